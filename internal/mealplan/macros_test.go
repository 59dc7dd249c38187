package mealplan

import "testing"

func TestMacroSplit(t *testing.T) {
	t.Run("Percentages", func(t *testing.T) {
		split := MacroSplit(Nutrition{Protein: 30, Fat: 20, Carbs: 50})
		if split.Protein != 30 || split.Fat != 20 || split.Carbs != 50 {
			t.Errorf("Unexpected split %+v", split)
		}
	})

	t.Run("Rounded", func(t *testing.T) {
		split := MacroSplit(Nutrition{Protein: 1, Fat: 1, Carbs: 1})
		if split.Protein != 33.33 || split.Fat != 33.33 || split.Carbs != 33.33 {
			t.Errorf("Expected thirds rounded to 33.33, got %+v", split)
		}
	})

	t.Run("ZeroTotal", func(t *testing.T) {
		split := MacroSplit(Nutrition{Calories: 1200})
		if split != (Split{}) {
			t.Errorf("Expected zero split, got %+v", split)
		}
	})
}
