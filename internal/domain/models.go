package domain

import "time"

// Recipe represents a single meal as returned by the recipe API
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumbnail    string
	Tags         []string
	YouTube      string
	Source       string
	Ingredients  []Ingredient
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name    string
	Measure string
}

// Category represents a recipe category
type Category struct {
	ID          string
	Name        string
	Description string
	Thumbnail   string
}

// Favorite is a recipe the user has starred
type Favorite struct {
	RecipeID string
	Name     string
	Category string
	Area     string
	AddedAt  time.Time
}

// Recipe returns the stored summary as a Recipe so favorites can be listed
// without going back to the API.
func (f Favorite) Recipe() Recipe {
	return Recipe{
		ID:       f.RecipeID,
		Name:     f.Name,
		Category: f.Category,
		Area:     f.Area,
	}
}

// MinRating and MaxRating bound the star ratings a user can give
const (
	MinRating = 1
	MaxRating = 5
)
