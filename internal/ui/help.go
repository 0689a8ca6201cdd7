package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipebox/internal/logic"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	key  string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn, h/l", "Previous/next page"},
		{"gg/G", "Go to top/bottom"},
	}},
	{"Search", []helpEntry{
		{"/", "Edit the search query (results update as you type)"},
		{"Enter", "Back to the list, keeping the query"},
		{"Esc", "Back to the list, keeping the query"},
		{"r", "Search again, bypassing the cache"},
		{"C", "Clear cached searches"},
	}},
	{"Recipes", []helpEntry{
		{"Enter", "Show recipe details"},
		{"f", "Toggle favorite"},
		{"1-5", "Rate recipe"},
		{"0", "Clear rating"},
		{"v", "Switch between results and favorites"},
		{"x", "Show a random recipe"},
	}},
	{"Browse", []helpEntry{
		{"c", "Pick a category to browse"},
		{"r", "Reload the browsed category"},
		{"Esc", "Back to search results"},
	}},
	{"Filter & Sort", []helpEntry{
		{"F", "Filter listed recipes"},
		{"Esc", "Clear filter"},
		{"s", "Sort options"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("recipebox Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(e.key), descStyle.Render(e.desc)))
		}
	}

	// Filter examples
	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Filter examples: fav, category:dessert, area:italian, tag:pasta, rated:>=4, name:*pie*"))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Sort modes: " + strings.Join(logic.SortModeNames(), ", ")))

	return help.String()
}
