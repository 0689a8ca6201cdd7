package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/ui/input/types"
)

// CategorySelectMode picks a category to browse. Categories load in the
// background, so the list can still be empty while the picker is open.
type CategorySelectMode struct {
	index int
}

func NewCategorySelectMode() *CategorySelectMode {
	return &CategorySelectMode{}
}

func (m *CategorySelectMode) Name() string {
	return "category"
}

func (m *CategorySelectMode) Enter(ctx types.Context) []types.Action {
	m.index = 0
	current := ctx.CurrentCategory()
	for i, name := range ctx.Categories() {
		if name == current {
			m.index = i
			break
		}
	}
	return []types.Action{types.UpdateCategoryIndexAction{Index: m.index}}
}

func (m *CategorySelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *CategorySelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	categories := ctx.Categories()

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "enter":
		if m.index >= len(categories) {
			return nil, true
		}
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.BrowseCategoryAction{Name: categories[m.index]},
		}, true

	case "up", "k":
		return m.step(-1, len(categories)), true

	case "down", "j":
		return m.step(1, len(categories)), true
	}

	return nil, true
}

func (m *CategorySelectMode) step(delta, n int) []types.Action {
	if n == 0 {
		return nil
	}
	m.index = ((m.index+delta)%n + n) % n
	return []types.Action{types.UpdateCategoryIndexAction{Index: m.index}}
}

// GetCurrentIndex returns the highlighted category
func (m *CategorySelectMode) GetCurrentIndex() int {
	return m.index
}
