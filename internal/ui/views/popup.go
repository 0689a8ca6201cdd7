package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers popupContent on an otherwise blank screen. Content
// taller than the screen is cut off with a hint to close the popup.
func (pr *PopupRenderer) RenderPopup(popupContent string, height, width int, popupStyle lipgloss.Style) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	// Border and padding take two rows/columns on each side
	maxLines := height - 6
	if maxLines < 3 {
		maxLines = 3
	}
	lines := strings.Split(popupContent, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], pr.styles.Scroll.Render("… (esc to close)"))
	}

	styled := popupStyle.MaxWidth(width - 2).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}
