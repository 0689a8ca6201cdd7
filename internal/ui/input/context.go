package input

import (
	"recipebox/internal/domain"
	"recipebox/internal/logic"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Rows          []domain.Recipe // rows currently listed, after filter and sort
	Index         int             // selected row, -1 when empty
	Query         string
	Filter        string
	CurrentSort   logic.SortMode
	FavoritesView bool
	Category      string   // category being browsed, empty for search results
	CategoryNames []string // categories offered by the picker
}

// HasRecipe reports whether a recipe is under the cursor
func (c *ModelContext) HasRecipe() bool {
	return c.Index >= 0 && c.Index < len(c.Rows)
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.Query
}

// FilterQuery returns the active filter text
func (c *ModelContext) FilterQuery() string {
	return c.Filter
}

// GetCurrentSort returns the current sort mode
func (c *ModelContext) GetCurrentSort() string {
	return c.CurrentSort.String()
}

// Browsing reports whether favorites or a category replace the search results
func (c *ModelContext) Browsing() bool {
	return c.FavoritesView || c.Category != ""
}

func (c *ModelContext) Categories() []string {
	return c.CategoryNames
}

func (c *ModelContext) CurrentCategory() string {
	return c.Category
}
