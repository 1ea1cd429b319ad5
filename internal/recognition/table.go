package recognition

import "github.com/mmynk/platelog/internal/nutrition"

// Food is a recognition result: a named food with its nutrition estimate.
// Confidence is in [0,1] and is informational only.
type Food struct {
	Name       string
	Confidence float64
	Nutrition  nutrition.Record
}

// defaultTable is the reference data the stub picks from. It is never mutated.
var defaultTable = []Food{
	{
		Name:       "Apple",
		Confidence: 0.92,
		Nutrition:  nutrition.Record{Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Sugar: 19, Fiber: 4},
	},
	{
		Name:       "Banana",
		Confidence: 0.95,
		Nutrition:  nutrition.Record{Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Sugar: 14, Fiber: 3.1},
	},
	{
		Name:       "Chicken Salad",
		Confidence: 0.87,
		Nutrition:  nutrition.Record{Calories: 320, Protein: 32, Carbs: 12, Fat: 15, Sugar: 3, Fiber: 4},
	},
	{
		Name:       "Pasta with Tomato Sauce",
		Confidence: 0.88,
		Nutrition:  nutrition.Record{Calories: 380, Protein: 12, Carbs: 68, Fat: 8, Sugar: 10, Fiber: 6},
	},
	{
		Name:       "Chocolate Cake",
		Confidence: 0.91,
		Nutrition:  nutrition.Record{Calories: 450, Protein: 6, Carbs: 55, Fat: 23, Sugar: 32, Fiber: 2},
	},
}

// DefaultTable returns a copy of the built-in reference foods.
func DefaultTable() []Food {
	out := make([]Food, len(defaultTable))
	copy(out, defaultTable)
	return out
}
