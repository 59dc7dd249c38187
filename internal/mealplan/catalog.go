package mealplan

// availableDiets are the dietary restriction tags the generate endpoint
// understands.
var availableDiets = []string{
	"gluten-free",
	"ketogenic",
	"vegetarian",
	"vegan",
	"pescetarian",
	"paleo",
	"primal",
	"whole30",
}

// commonAllergies are exclusion tags covering common food allergies.
var commonAllergies = []string{
	"dairy",
	"egg",
	"gluten",
	"grain",
	"peanut",
	"seafood",
	"sesame",
	"shellfish",
	"soy",
	"sulfite",
	"tree-nut",
	"wheat",
}

// AvailableDiets returns the dietary restriction tags supported by the API.
func AvailableDiets() []string {
	diets := make([]string, len(availableDiets))
	copy(diets, availableDiets)
	return diets
}

// CommonAllergies returns the exclusion tags for common food allergies.
func CommonAllergies() []string {
	allergies := make([]string, len(commonAllergies))
	copy(allergies, commonAllergies)
	return allergies
}
