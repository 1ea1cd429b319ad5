package nutrition

// Band classifies a daily value against a recommended range.
type Band string

const (
	BandLow  Band = "low"
	BandGood Band = "good"
	BandHigh Band = "high"
)

// Range is an inclusive recommended interval.
type Range struct {
	Min float64
	Max float64
}

// Classify places v relative to the range.
func (r Range) Classify(v float64) Band {
	if v < r.Min {
		return BandLow
	}
	if v > r.Max {
		return BandHigh
	}
	return BandGood
}

// Guidelines are the daily recommended ranges used by Evaluate.
type Guidelines struct {
	Calories Range
	Protein  Range
	Carbs    Range
	Fat      Range
}

// DefaultGuidelines returns general adult guidelines. They are not personalised.
func DefaultGuidelines() Guidelines {
	return Guidelines{
		Calories: Range{Min: 1800, Max: 2500},
		Protein:  Range{Min: 50, Max: 100},
		Carbs:    Range{Min: 225, Max: 325},
		Fat:      Range{Min: 44, Max: 78},
	}
}

// Evaluation is the band for each tracked daily value.
type Evaluation struct {
	Calories Band
	Protein  Band
	Carbs    Band
	Fat      Band
}

// Evaluate classifies totals against g.
func Evaluate(totals DailyTotals, g Guidelines) Evaluation {
	return Evaluation{
		Calories: g.Calories.Classify(totals.Calories),
		Protein:  g.Protein.Classify(totals.Protein),
		Carbs:    g.Carbs.Classify(totals.Carbs),
		Fat:      g.Fat.Classify(totals.Fat),
	}
}

// Progress tracks consumed calories against a daily goal.
type Progress struct {
	Consumed  float64
	Goal      float64
	Remaining float64
	// Percent of goal consumed, rounded. Can exceed 100.
	Percent int
}

// CalorieProgress computes how much of goal has been consumed.
// Remaining never goes below zero and a zero goal reports 0 percent.
func CalorieProgress(consumed, goal float64) Progress {
	p := Progress{Consumed: consumed, Goal: goal}
	if goal > consumed {
		p.Remaining = goal - consumed
	}
	if goal > 0 {
		p.Percent = roundPct(consumed, goal)
	}
	return p
}
