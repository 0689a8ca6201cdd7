package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"recipebox/internal/domain"
)

const (
	categoryColumn = 14
	areaColumn     = 12
	ratingColumn   = domain.MaxRating
	minNameColumn  = 12
	ellipsis       = "..."
)

// RecipeRenderer handles rendering of recipe rows
type RecipeRenderer struct {
	styles *Styles
}

// NewRecipeRenderer creates a new recipe renderer
func NewRecipeRenderer(styles *Styles) *RecipeRenderer {
	return &RecipeRenderer{
		styles: styles,
	}
}

// RowState is everything about a recipe that is not part of the recipe itself
type RowState struct {
	Selected bool
	Favorite bool
	Stars    int
}

// RenderRecipe renders one list row fitted to width terminal cells
func (r *RecipeRenderer) RenderRecipe(recipe domain.Recipe, row RowState, searchQuery string, width int) string {
	bg := lipgloss.NewStyle()
	if row.Selected {
		bg = r.styles.SelectionBg
	}

	marker := "  "
	if row.Favorite {
		marker = "♥ "
	}

	nameWidth := NameColumnWidth(width)
	name := runewidth.FillRight(Truncate(recipe.Name, nameWidth), nameWidth)
	renderedName := bg.Render(name)
	if searchQuery != "" {
		renderedName = r.highlightMatch(name, searchQuery, bg.Inherit(r.styles.Highlight), bg)
	}

	category := runewidth.FillRight(Truncate(recipe.Category, categoryColumn), categoryColumn)
	area := runewidth.FillRight(Truncate(recipe.Area, areaColumn), areaColumn)
	categoryStyle := bg.Foreground(lipgloss.Color(CategoryColor(recipe.Category)))

	parts := []string{
		bg.Inherit(r.styles.Favorite).Render(marker),
		renderedName,
		bg.Render(" "),
		categoryStyle.Render(category),
		bg.Render(" "),
		bg.Faint(true).Render(area),
		bg.Render(" "),
		bg.Inherit(r.styles.Rating).Render(Stars(row.Stars)),
	}
	return strings.Join(parts, "")
}

// NameColumnWidth is the width left for recipe names once the fixed columns are placed
func NameColumnWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	// marker + main padding + separators
	n := width - 2 - 4 - 3 - categoryColumn - areaColumn - ratingColumn
	if n < minNameColumn {
		n = minNameColumn
	}
	return n
}

// Truncate shortens s to at most width terminal cells, marking the cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Stars renders a rating as filled and empty stars; zero renders blank
func Stars(n int) string {
	if n <= 0 {
		return strings.Repeat(" ", ratingColumn)
	}
	if n > domain.MaxRating {
		n = domain.MaxRating
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", domain.MaxRating-n)
}

// highlightMatch highlights the first case-insensitive occurrence of query
func (r *RecipeRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	index := strings.Index(lowerText, lowerQuery)
	// Lowercasing can change byte lengths; only slice when offsets still line up
	if lowerQuery == "" || index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(lowerQuery)]
	after := text[index+len(lowerQuery):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
