package calorie

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput indicates that one of the personal metrics failed validation.
var ErrInvalidInput = errors.New("invalid input")

// activityMultipliers maps each recognized activity level to the factor
// applied on top of the basal metabolic rate.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

// activityLevelOrder lists the levels from least to most active.
var activityLevelOrder = []string{
	"sedentary",
	"lightly_active",
	"moderately_active",
	"very_active",
	"extra_active",
}

// ActivityLevels returns the recognized activity levels, least active first.
func ActivityLevels() []string {
	levels := make([]string, len(activityLevelOrder))
	copy(levels, activityLevelOrder)
	return levels
}

// Estimate calculates daily calorie needs using the Mifflin-St Jeor equation
// and the given activity level, rounded to two decimal places.
// Gender and activity level are matched case-insensitively. An unrecognized
// activity level is an error, never a silent fallback.
func Estimate(weightKg, heightCm float64, ageYears int, gender, activityLevel string) (float64, error) {
	if !(weightKg >= 20 && weightKg <= 300) {
		return 0, fmt.Errorf("%w: weight must be between 20 and 300 kg", ErrInvalidInput)
	}
	if !(heightCm >= 100 && heightCm <= 250) {
		return 0, fmt.Errorf("%w: height must be between 100 and 250 cm", ErrInvalidInput)
	}
	if ageYears < 15 || ageYears > 100 {
		return 0, fmt.Errorf("%w: age must be between 15 and 100 years", ErrInvalidInput)
	}

	var bmr float64
	switch strings.ToLower(gender) {
	case "male":
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(ageYears) + 5
	case "female":
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(ageYears) - 161
	default:
		return 0, fmt.Errorf("%w: gender must be either 'male' or 'female'", ErrInvalidInput)
	}

	multiplier, ok := activityMultipliers[strings.ToLower(activityLevel)]
	if !ok {
		return 0, fmt.Errorf("%w: activity level must be one of: %s", ErrInvalidInput, strings.Join(activityLevelOrder, ", "))
	}

	return round2(bmr * multiplier), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
