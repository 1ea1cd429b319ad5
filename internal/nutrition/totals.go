package nutrition

import "math"

// Record is the nutrition information for one food item.
// Calories are kcal, everything else is grams.
type Record struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
}

// Add returns the field-wise sum of r and o.
func (r Record) Add(o Record) Record {
	return Record{
		Calories: r.Calories + o.Calories,
		Protein:  r.Protein + o.Protein,
		Carbs:    r.Carbs + o.Carbs,
		Fat:      r.Fat + o.Fat,
		Fiber:    r.Fiber + o.Fiber,
		Sugar:    r.Sugar + o.Sugar,
	}
}

// Negative reports whether any field is below zero.
func (r Record) Negative() bool {
	return r.Calories < 0 || r.Protein < 0 || r.Carbs < 0 ||
		r.Fat < 0 || r.Fiber < 0 || r.Sugar < 0
}

// DailyTotals is the sum of a day's records plus how many were summed.
type DailyTotals struct {
	Record
	MealCount int
}

// MacroSplit holds each macronutrient's share of protein+carbs+fat as a
// whole-number percentage.
type MacroSplit struct {
	ProteinPct int
	CarbsPct   int
	FatPct     int
}

// Aggregate sums records field by field. An empty slice yields zero totals.
func Aggregate(records []Record) DailyTotals {
	var totals DailyTotals
	for _, r := range records {
		totals.Record = totals.Record.Add(r)
	}
	totals.MealCount = len(records)
	return totals
}

// MacroPercentages computes each macro's share of the three-way total.
// Each share is rounded on its own, so the three values may sum to 99..102.
// A zero total gives 0/0/0.
func MacroPercentages(protein, carbs, fat float64) MacroSplit {
	total := protein + carbs + fat
	if total == 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		ProteinPct: roundPct(protein, total),
		CarbsPct:   roundPct(carbs, total),
		FatPct:     roundPct(fat, total),
	}
}

func roundPct(v, total float64) int {
	return int(math.Round(v / total * 100))
}
