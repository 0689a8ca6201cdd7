package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode // which mode the text belongs to
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Recipe actions
type OpenRecipeAction struct{}

func (a OpenRecipeAction) Type() string { return "open_recipe" }

type ToggleFavoriteAction struct{}

func (a ToggleFavoriteAction) Type() string { return "toggle_favorite" }

type RateAction struct {
	Stars int // 0 clears the rating
}

func (a RateAction) Type() string { return "rate" }

type ToggleFavoritesViewAction struct{}

func (a ToggleFavoritesViewAction) Type() string { return "toggle_favorites_view" }

// Browse actions
type BrowseCategoryAction struct {
	Name string
}

func (a BrowseCategoryAction) Type() string { return "browse_category" }

type BackToResultsAction struct{}

func (a BackToResultsAction) Type() string { return "back_to_results" }

type RandomRecipeAction struct{}

func (a RandomRecipeAction) Type() string { return "random_recipe" }

type UpdateCategoryIndexAction struct {
	Index int
}

func (a UpdateCategoryIndexAction) Type() string { return "update_category_index" }

// Search actions
type RefetchAction struct{}

func (a RefetchAction) Type() string { return "refetch" }

type ClearCacheAction struct{}

func (a ClearCacheAction) Type() string { return "clear_cache" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }
