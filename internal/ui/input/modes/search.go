package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/ui/input/types"
)

// SearchMode edits the live search query. Every edit is forwarded as an
// UpdateTextAction; leaving the mode never reverts the query.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "down", "pgup", "pgdown":
		// Browse results without leaving the search box
		return []types.Action{types.NavigateAction{Direction: arrowDirection(msg.String())}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

func arrowDirection(key string) string {
	switch key {
	case "pgup":
		return "pageup"
	case "pgdown":
		return "pagedown"
	default:
		return key
	}
}
