package recipes

import (
	"fmt"
	"strings"

	"recipebox/internal/domain"
)

// maxIngredients is the number of strIngredientN/strMeasureN pairs a meal carries
const maxIngredients = 20

// mealDTO is one entry of a "meals" array. Every field is a string or null, and
// the ingredient list is spread over numbered keys, so it is decoded loosely.
type mealDTO map[string]any

type mealsResponse struct {
	Meals []mealDTO `json:"meals"`
}

type categoryDTO struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumbnail   string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

type categoriesResponse struct {
	Categories []categoryDTO `json:"categories"`
}

func (m mealDTO) str(key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (m mealDTO) toRecipe() domain.Recipe {
	r := domain.Recipe{
		ID:           m.str("idMeal"),
		Name:         m.str("strMeal"),
		Category:     m.str("strCategory"),
		Area:         m.str("strArea"),
		Instructions: m.str("strInstructions"),
		Thumbnail:    m.str("strMealThumb"),
		Tags:         splitTags(m.str("strTags")),
		YouTube:      m.str("strYoutube"),
		Source:       m.str("strSource"),
	}

	for i := 1; i <= maxIngredients; i++ {
		name := m.str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Name:    name,
			Measure: m.str(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return r
}

func (c categoryDTO) toCategory() domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: strings.TrimSpace(c.Description),
		Thumbnail:   c.Thumbnail,
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func toRecipes(meals []mealDTO) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.toRecipe())
	}
	return out
}
