package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/ui/input/modes"
	"recipebox/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
	sortMode    *modes.SortSelectMode
	catMode     *modes.CategorySelectMode
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		sortMode:    modes.NewSortSelectMode(),
		catMode:     modes.NewCategorySelectMode(),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeSort] = h.sortMode
	h.modes[types.ModeCategory] = h.catMode

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode, ctx)...)
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// Keys the text mode did not claim go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after, Mode: h.currentMode})
		}
	}

	return allActions, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action

	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	oldMode := h.currentMode
	h.currentMode = change.Mode

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	// Handle text input focus
	if h.isTextMode(h.currentMode) {
		h.textInput.Reset()
		h.textInput.SetValue(change.Data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}
	return actions
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the shared text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// SortIndex returns the highlighted sort option
func (h *Handler) SortIndex() int {
	return h.sortMode.GetCurrentIndex()
}

// CategoryIndex returns the highlighted category
func (h *Handler) CategoryIndex() int {
	return h.catMode.GetCurrentIndex()
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeFilter:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
