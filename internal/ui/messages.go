package ui

import (
	"recipebox/internal/domain"
	"recipebox/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// annotationsMsg carries favorites and ratings loaded from the store
type annotationsMsg struct {
	favorites map[string]bool
	ratings   map[string]int
	err       error
}

// favoritesMsg carries the saved favorites for the favorites view
type favoritesMsg struct {
	favorites []domain.Favorite
	err       error
}

// categoriesMsg carries the category list for the category picker
type categoriesMsg struct {
	categories []domain.Category
	err        error
}

// categoryMsg carries recipes for one or more categories. name is set when
// the user asked for that category; preloads leave it empty.
type categoryMsg struct {
	name    string
	recipes map[string][]domain.Recipe
	err     error
}

// detailMsg contains a recipe fetched for the detail view
type detailMsg struct {
	recipe *domain.Recipe
	err    error
}

// recipePagerMsg contains the result of showing a recipe in the pager
type recipePagerMsg struct {
	recipe domain.Recipe
	err    error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	content string
	err     error
}

// storeResultMsg reports the outcome of a favorite or rating write
type storeResultMsg struct {
	status string
	err    error
}

// clearStatusMsg clears a transient status message
type clearStatusMsg struct {
	id int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
