package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/ui/input/types"
)

// ggWindow is how long a first 'g' waits for the second one
const ggWindow = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()

	// Any other key cancels the 'g' prefix
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp, tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown, tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.HasRecipe() {
			return []types.Action{types.OpenRecipeAction{}}, true
		}
		return nil, true

	case tea.KeyEsc:
		// Esc drops an active filter first, then leaves favorites or a category
		if ctx.FilterQuery() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		if ctx.Browsing() {
			return []types.Action{types.BackToResultsAction{}}, true
		}
		return nil, true
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case "l":
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case "f":
		if ctx.HasRecipe() {
			return []types.Action{types.ToggleFavoriteAction{}}, true
		}
		return nil, true

	case "1", "2", "3", "4", "5":
		if ctx.HasRecipe() {
			return []types.Action{types.RateAction{Stars: int(key[0] - '0')}}, true
		}
		return nil, true

	case "0":
		if ctx.HasRecipe() {
			return []types.Action{types.RateAction{Stars: 0}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.RefetchAction{}}, true

	case "C":
		return []types.Action{types.ClearCacheAction{}}, true

	case "v":
		return []types.Action{types.ToggleFavoritesViewAction{}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true

	case "ctrl+f", "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterQuery()}}, true

	case "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case "c":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeCategory}}, true

	case "x":
		return []types.Action{types.RandomRecipeAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		now := m.now()
		if m.lastKeyWasG && now.Sub(m.lastGTime) < ggWindow {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = now
		return nil, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	return nil, false
}
