package mealplan

// Split is the percentage contribution of each macronutrient.
type Split struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// MacroSplit computes each macro's share of the total macro grams as
// percentages rounded to two decimals. A plan without macro data yields all
// zeroes instead of a division by zero.
func MacroSplit(n Nutrition) Split {
	total := n.Protein + n.Fat + n.Carbs
	if total <= 0 {
		return Split{}
	}
	return Split{
		Protein: round2(n.Protein / total * 100),
		Fat:     round2(n.Fat / total * 100),
		Carbs:   round2(n.Carbs / total * 100),
	}
}
