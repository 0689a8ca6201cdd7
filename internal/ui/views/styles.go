package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	DetailBox     lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Category      lipgloss.Style
	Favorite      lipgloss.Style
	Rating        lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Category:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Favorite:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Rating:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// CategoryColor returns a stable color for a recipe category
func CategoryColor(category string) string {
	switch category {
	case "Vegetarian", "Vegan":
		return "78" // green
	case "Dessert":
		return "213" // pink
	case "Seafood":
		return "33" // blue
	case "Beef", "Lamb", "Goat", "Pork":
		return "203" // red
	case "":
		return "241"
	default:
		return "214" // yellow
	}
}
