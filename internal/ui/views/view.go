package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipebox/internal/domain"
	"recipebox/internal/ui/input/modes"
)

// SearchStatus is the part of the search controller state the views need
type SearchStatus struct {
	Query          string
	DebouncedQuery string
	Pending        bool
	Loading        bool
	Err            error
	Retryable      bool // Err may go away on refetch
	Empty          bool // settled with no results
	CacheSize      int
	CacheCapacity  int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Rows            []domain.Recipe // current page
	Total           int             // rows across all pages
	SelectedIndex   int             // within Rows, -1 for none
	Favorites       map[string]bool
	Ratings         map[string]int
	Search          SearchStatus
	Spinner         string
	FilterQuery     string
	FilterErr       error
	FavoritesView   bool
	Category        string // category being browsed instead of search results
	CategoryLoading bool
	Categories      []string // picker options in category mode
	CategoryIndex   int
	SortName        string
	Page            int
	PageCount       int
	StatusMessage   string
	InputMode       string // "", "search", "filter", "sort" or "category"
	TextInput       string // rendered text input for text modes
	SortOptionIndex int
	Popup           string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	recipes     *RecipeRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		recipes:     NewRecipeRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Popup != "" {
		return r.popupRender.RenderPopup(state.Popup, state.Height, state.Width, r.styles.DetailBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n")

	switch state.InputMode {
	case "sort":
		content.WriteString(r.renderSortOptions(state))
	case "category":
		content.WriteString(r.renderCategoryOptions(state))
	case "search", "filter":
		content.WriteString(state.TextInput)
	default:
		content.WriteString(r.renderQueryLine(state))
	}
	content.WriteString("\n")
	content.WriteString(r.RenderStatusLine(state))
	content.WriteString("\n\n")

	if len(state.Rows) > 0 {
		content.WriteString(r.renderRecipeList(state))
	}

	footer := r.renderFooter(state)

	// Push the footer to the bottom of the screen
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // Main padding
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - 1; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderHeader renders the title line with right-aligned cache and filter indicators
func (r *Renderer) renderHeader(state ViewState) string {
	title := "recipebox"
	switch {
	case state.FavoritesView:
		title = "recipebox · favorites"
	case state.Category != "":
		title = "recipebox · " + state.Category
	}
	logo := r.styles.Title.Render(title)

	var right []string
	if !state.FavoritesView && state.Category == "" {
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("cache %d/%d", state.Search.CacheSize, state.Search.CacheCapacity)))
	}
	if state.SortName != "" {
		right = append(right, r.styles.Dim.Render("sort: "+state.SortName))
	}
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	rightContent := strings.Join(right, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

// renderQueryLine shows the query the results belong to
func (r *Renderer) renderQueryLine(state ViewState) string {
	if state.FavoritesView {
		return r.styles.Dim.Render("Showing saved favorites (v to return to search)")
	}
	if state.Category != "" {
		return r.styles.Dim.Render("Browsing " + state.Category + " (esc to return to search)")
	}
	if state.Search.Query == "" {
		return r.styles.Dim.Render("Search: ")
	}
	return r.styles.Dim.Render("Search: ") + state.Search.Query
}

// RenderStatusLine summarises the search state in one line
func (r *Renderer) RenderStatusLine(state ViewState) string {
	if state.StatusMessage != "" {
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}
	if state.FilterErr != nil {
		return r.styles.StatusWarning.Render(state.FilterErr.Error())
	}
	if state.FavoritesView {
		if state.Total == 0 {
			return r.styles.Status.Render("No favorites yet. Press f on a recipe to save it")
		}
		return r.styles.Status.Render(countLabel(state.Total, "favorite"))
	}

	if state.Category != "" {
		switch {
		case state.CategoryLoading:
			return r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading %s recipes", state.Spinner, state.Category))
		case state.Total == 0:
			return r.styles.Status.Render("No recipes in " + state.Category)
		default:
			return r.styles.Status.Render(countLabel(state.Total, "recipe") + " in " + state.Category)
		}
	}

	s := state.Search
	switch {
	case s.Loading:
		return r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching for %q", state.Spinner, s.DebouncedQuery))
	case s.Pending:
		return r.styles.StatusLoading.Render("…")
	case s.Err != nil:
		line := r.styles.StatusError.Render(fmt.Sprintf("Search failed: %v", s.Err))
		if s.Retryable {
			line += r.styles.Dim.Render("  press r to retry")
		}
		return line
	case strings.TrimSpace(s.DebouncedQuery) == "":
		return r.styles.Status.Render("Type / to search")
	case s.Empty:
		return r.styles.Status.Render("No recipes found")
	case state.Total == 0 && state.FilterQuery != "":
		return r.styles.Status.Render("No recipes match the filter")
	default:
		return r.styles.Status.Render(countLabel(state.Total, "recipe"))
	}
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// renderRecipeList renders the current page with scroll indicators
func (r *Renderer) renderRecipeList(state ViewState) string {
	lines := make([]string, 0, len(state.Rows))
	highlight := state.Search.DebouncedQuery
	if state.FavoritesView || state.Category != "" {
		highlight = ""
	}
	for i, recipe := range state.Rows {
		row := RowState{
			Selected: i == state.SelectedIndex,
			Favorite: state.Favorites[recipe.ID],
			Stars:    state.Ratings[recipe.ID],
		}
		lines = append(lines, r.recipes.RenderRecipe(recipe, row, highlight, state.Width))
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the page indicator and the help hint
func (r *Renderer) renderFooter(state ViewState) string {
	pageCount := state.PageCount
	if pageCount < 1 {
		pageCount = 1
	}
	page := r.styles.Scroll.Render(fmt.Sprintf("Page %d/%d", state.Page+1, pageCount))
	return page + "  " + r.styles.Help.Render("Press ? for help")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	if state.SortOptionIndex < 0 || state.SortOptionIndex >= len(modes.SortOptions) {
		return ""
	}
	option := modes.SortOptions[state.SortOptionIndex]
	sortLine := fmt.Sprintf("Sort by: %s - %s", option.Name, option.Description)
	helpLine := r.styles.Dim.Render("  ↑/↓ or j/k to change • Enter to accept • Esc to cancel")
	return sortLine + helpLine
}

// renderCategoryOptions renders the category picker
func (r *Renderer) renderCategoryOptions(state ViewState) string {
	if len(state.Categories) == 0 {
		return r.styles.StatusLoading.Render(state.Spinner + " Loading categories")
	}
	if state.CategoryIndex < 0 || state.CategoryIndex >= len(state.Categories) {
		return ""
	}
	line := fmt.Sprintf("Browse: %s (%d/%d)", state.Categories[state.CategoryIndex], state.CategoryIndex+1, len(state.Categories))
	return line + r.styles.Dim.Render("  ↑/↓ or j/k to change • Enter to open • Esc to cancel")
}
