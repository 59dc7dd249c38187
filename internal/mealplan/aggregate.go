package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mealSlots fixes the labels meals are distributed across, in rotation order.
var mealSlots = []string{"Breakfast", "Lunch", "Dinner"}

// aggregate distributes meals round-robin across the day's slots and sums
// each slot's nutrition, prep time, servings and source links. Slot figures
// are rounded for display while the daily total accumulates the unrounded
// sums and is rounded once at the end.
func (c *spoonacularClient) aggregate(ctx context.Context, meals []Meal) *Plan {
	buckets := make([][]Meal, len(mealSlots))
	for i, meal := range meals {
		slot := i % len(mealSlots)
		buckets[slot] = append(buckets[slot], meal)
	}

	plan := &Plan{}
	var day Nutrition
	for slot, members := range buckets {
		if len(members) == 0 {
			continue
		}

		var total Nutrition
		for _, meal := range members {
			nutrition := meal.Nutrition
			if nutrition == nil {
				fetched, err := c.recipeNutrition(ctx, meal.ID)
				if err != nil {
					// A failed lookup only costs this meal's nutrition
					// contribution, not its place in the plan.
					continue
				}
				nutrition = fetched
			}
			total.Calories += nutrition.Calories
			total.Protein += nutrition.Protein
			total.Fat += nutrition.Fat
			total.Carbs += nutrition.Carbs
		}

		day.Calories += total.Calories
		day.Protein += total.Protein
		day.Fat += total.Fat
		day.Carbs += total.Carbs

		group := MealGroup{
			Title:       mealSlots[slot],
			Description: describe(members[0].Summary),
			SourceURLs:  []string{},
			Nutrition:   roundNutrition(total),
			Meals:       members,
		}
		if members[0].Image != "" {
			group.Image = c.imageBaseURL + members[0].Image
		}
		for _, meal := range members {
			group.ReadyInMinutes += meal.ReadyInMinutes
			group.Servings += meal.Servings
			if meal.SourceURL != "" {
				group.SourceURLs = append(group.SourceURLs, meal.SourceURL)
			}
		}

		plan.Meals = append(plan.Meals, group)
	}

	plan.Nutrients = roundNutrition(day)
	return plan
}

// widgetNutrition is the nutrition widget payload. Amounts arrive as
// unit-suffixed strings like "250 kcal" or "30g".
type widgetNutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Fat      string `json:"fat"`
	Carbs    string `json:"carbs"`
}

// recipeNutrition fetches the nutrition widget for recipes the generate
// response carried no nutrition block for.
func (c *spoonacularClient) recipeNutrition(ctx context.Context, recipeID int) (*Nutrition, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/recipes/%d/nutritionWidget.json?%s", c.baseURL, recipeID, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe nutrition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	var widget widgetNutrition
	if err := json.NewDecoder(resp.Body).Decode(&widget); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	nutrition := &Nutrition{}
	for _, field := range []struct {
		raw  string
		unit string
		dst  *float64
	}{
		{widget.Calories, "kcal", &nutrition.Calories},
		{widget.Protein, "g", &nutrition.Protein},
		{widget.Fat, "g", &nutrition.Fat},
		{widget.Carbs, "g", &nutrition.Carbs},
	} {
		value, err := parseAmount(field.raw, field.unit)
		if err != nil {
			return nil, err
		}
		*field.dst = value
	}

	return nutrition, nil
}

// parseAmount strips the unit suffix from a widget value and parses the
// remainder. An absent value counts as zero.
func parseAmount(raw, unit string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, unit, ""))
	if s == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse nutrition amount %q: %w", raw, err)
	}
	return value, nil
}

// describe flattens a recipe summary, which arrives as an HTML fragment,
// into plain text.
func describe(summaryHTML string) string {
	if summaryHTML == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summaryHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func roundNutrition(n Nutrition) Nutrition {
	return Nutrition{
		Calories: round2(n.Calories),
		Protein:  round2(n.Protein),
		Fat:      round2(n.Fat),
		Carbs:    round2(n.Carbs),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
