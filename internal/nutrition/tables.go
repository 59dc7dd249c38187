package nutrition

import "fmt"

// Nutrient numbers referenced by name, as assigned by FoodData Central.
const (
	idEnergy  = 1008
	idProtein = 1003
	idFat     = 1004
	idCarbs   = 1005
	idFiber   = 1079
	idSugar   = 2000
	idWater   = 1051
)

// recognizedNutrientIDs lists the nutrient numbers surfaced in nutrient
// tables. Any other nutrient on the food record is ignored.
var recognizedNutrientIDs = map[int]bool{
	idEnergy:  true, // Energy (kcal)
	idProtein: true, // Protein (g)
	idFat:     true, // Total lipid (fat) (g)
	idCarbs:   true, // Carbohydrate, by difference (g)
	idFiber:   true, // Fiber, total dietary (g)
	idSugar:   true, // Sugars, Total (g)
	idWater:   true, // Water (g)
	1093:      true, // Sodium, Na (mg)
	1087:      true, // Calcium, Ca (mg)
	1089:      true, // Iron, Fe (mg)
	1106:      true, // Vitamin A, IU
	1162:      true, // Vitamin C, total ascorbic acid (mg)
	1114:      true, // Vitamin D (D2 + D3) (ug)
	1158:      true, // Vitamin E (alpha-tocopherol) (mg)
	1185:      true, // Vitamin K (phylloquinone) (ug)
	1175:      true, // Vitamin B-6 (mg)
	1178:      true, // Vitamin B-12 (ug)
	1177:      true, // Folate, total (ug)
	1090:      true, // Magnesium, Mg (mg)
	1095:      true, // Zinc, Zn (mg)
	1092:      true, // Potassium, K (mg)
	1018:      true, // Alcohol, ethyl (g)
	1057:      true, // Caffeine (mg)
	1253:      true, // Cholesterol (mg)
	1258:      true, // Fatty acids, total saturated (g)
	1292:      true, // Fatty acids, total monounsaturated (g)
	1293:      true, // Fatty acids, total polyunsaturated (g)
	1257:      true, // Fatty acids, total trans (g)
}

// mainNutrientIDs fixes the display order of the overview table.
var mainNutrientIDs = []int{idEnergy, idProtein, idFat, idCarbs, idFiber, idSugar, idWater}

// NutrientRow is one row of a nutrient table: the amount scaled to the
// requested portion, with the per-100g reference alongside.
type NutrientRow struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Amount        float64 `json:"amount"`
	AmountPer100g float64 `json:"amount_per_100g"`
}

// MacroBreakdown carries the per-100g macronutrient amounts backing the
// distribution chart.
type MacroBreakdown struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// NutrientTables groups the shaped nutrition facts for one food portion.
type NutrientTables struct {
	Main       []NutrientRow  `json:"main"`
	Additional []NutrientRow  `json:"additional"`
	Macros     MacroBreakdown `json:"macros"`
}

// BuildNutrientTables shapes a raw food record into display tables for a
// portion of the given size in grams. Recorded amounts are per 100 g; each
// recognized nutrient is scaled to the portion. When a nutrient number
// appears more than once on the record the last entry wins.
func BuildNutrientTables(detail *FoodDetail, grams float64) (*NutrientTables, error) {
	if detail == nil {
		return nil, fmt.Errorf("no food record to build tables from")
	}
	if grams <= 0 {
		return nil, fmt.Errorf("portion must be greater than zero, got %v g", grams)
	}

	rows := make([]NutrientRow, 0, len(detail.FoodNutrients))
	index := make(map[int]int)
	for _, fn := range detail.FoodNutrients {
		id := fn.Nutrient.ID
		if !recognizedNutrientIDs[id] {
			continue
		}
		unit := fn.Nutrient.UnitName
		if unit == "" {
			unit = "g"
		}
		row := NutrientRow{
			ID:            id,
			Name:          fn.Nutrient.Name,
			Unit:          unit,
			Amount:        fn.Amount * grams / 100,
			AmountPer100g: fn.Amount,
		}
		if at, seen := index[id]; seen {
			rows[at] = row
			continue
		}
		index[id] = len(rows)
		rows = append(rows, row)
	}

	tables := &NutrientTables{
		Main:       []NutrientRow{},
		Additional: []NutrientRow{},
	}
	for _, id := range mainNutrientIDs {
		if at, ok := index[id]; ok {
			tables.Main = append(tables.Main, rows[at])
		}
	}
	for _, row := range rows {
		if !isMainNutrient(row.ID) {
			tables.Additional = append(tables.Additional, row)
		}
	}

	if at, ok := index[idProtein]; ok {
		tables.Macros.Protein = rows[at].AmountPer100g
	}
	if at, ok := index[idFat]; ok {
		tables.Macros.Fat = rows[at].AmountPer100g
	}
	if at, ok := index[idCarbs]; ok {
		tables.Macros.Carbs = rows[at].AmountPer100g
	}

	return tables, nil
}

func isMainNutrient(id int) bool {
	for _, main := range mainNutrientIDs {
		if id == main {
			return true
		}
	}
	return false
}
