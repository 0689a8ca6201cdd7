package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/ui/input/types"
)

// SortOptions available for sorting
var SortOptions = []struct {
	Key         string
	Name        string
	Description string
}{
	{"name", "Name", "Sort by recipe name"},
	{"category", "Category", "Group by category, then name"},
	{"area", "Area", "Group by cuisine area, then name"},
	{"rating", "Rating", "Highest rated first"},
	{"favorites", "Favorites", "Favorites first, then name"},
}

type SortSelectMode struct {
	sortIndex     int
	originalIndex int // Remember the original sort when entering
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	current := ctx.GetCurrentSort()
	m.sortIndex = 0
	for i, option := range SortOptions {
		if option.Key == current {
			m.sortIndex = i
			break
		}
	}
	m.originalIndex = m.sortIndex

	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Criteria: SortOptions[m.originalIndex].Key},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "up", "k":
		return m.step(-1), true

	case "down", "j":
		return m.step(1), true
	}

	return nil, true
}

// step moves through the options, wrapping at both ends, and applies the sort immediately
func (m *SortSelectMode) step(delta int) []types.Action {
	n := len(SortOptions)
	m.sortIndex = ((m.sortIndex+delta)%n + n) % n
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Criteria: SortOptions[m.sortIndex].Key},
	}
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
