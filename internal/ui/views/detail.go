package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipebox/internal/domain"
)

// RenderDetail formats a full recipe for the pager or the fallback popup.
// The image URL is only listed when showThumbnail is set.
func RenderDetail(recipe domain.Recipe, row RowState, showThumbnail bool) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	measureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	title := recipe.Name
	if row.Favorite {
		title = "♥ " + title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	var meta []string
	if recipe.Category != "" {
		meta = append(meta, lipgloss.NewStyle().Foreground(lipgloss.Color(CategoryColor(recipe.Category))).Render(recipe.Category))
	}
	if recipe.Area != "" {
		meta = append(meta, recipe.Area)
	}
	if row.Stars > 0 {
		meta = append(meta, lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render(Stars(row.Stars)))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, dim.Render(" · ")))
		b.WriteString("\n")
	}
	if len(recipe.Tags) > 0 {
		b.WriteString(dim.Render("Tags: " + strings.Join(recipe.Tags, ", ")))
		b.WriteString("\n")
	}

	if len(recipe.Ingredients) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Ingredients"))
		b.WriteString("\n")
		for _, ing := range recipe.Ingredients {
			if ing.Measure != "" {
				b.WriteString(fmt.Sprintf("  • %s %s\n", measureStyle.Render(ing.Measure), ing.Name))
			} else {
				b.WriteString(fmt.Sprintf("  • %s\n", ing.Name))
			}
		}
	}

	if instructions := strings.TrimSpace(recipe.Instructions); instructions != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Instructions"))
		b.WriteString("\n")
		for _, para := range strings.Split(instructions, "\n") {
			if para = strings.TrimSpace(para); para != "" {
				b.WriteString(para)
				b.WriteString("\n\n")
			}
		}
	}

	var links []string
	if recipe.YouTube != "" {
		links = append(links, "Video:  "+recipe.YouTube)
	}
	if recipe.Source != "" {
		links = append(links, "Source: "+recipe.Source)
	}
	if showThumbnail && recipe.Thumbnail != "" {
		links = append(links, "Image:  "+recipe.Thumbnail)
	}
	if len(links) > 0 {
		b.WriteString(sectionStyle.Render("Links"))
		b.WriteString("\n")
		for _, l := range links {
			b.WriteString(dim.Render("  " + l))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
