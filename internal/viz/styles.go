package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Dynamic lipgloss.Style
	Label   lipgloss.Style
	Subtle  lipgloss.Style
	Border  lipgloss.Style
	Panel   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),
		Dynamic: lipgloss.NewStyle().
			Foreground(t.Dynamic).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Border: lipgloss.NewStyle().
			Foreground(t.Border),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// BoxWithTitle renders content in a rounded panel under a title line.
func (s Styles) BoxWithTitle(title, content string) string {
	return s.Title.Render(title) + "\n" + s.Panel.Render(content)
}

func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
