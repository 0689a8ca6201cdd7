package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"recipebox/internal/ui/input/types"
)

// FilterMode narrows the current results locally; it never triggers a lookup
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}
