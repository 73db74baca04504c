// Package tui is an interactive terminal browser over a defined model.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/viz"
)

type state int

const (
	stateComponents state = iota
	stateDetail
	stateSymbols
)

type slot struct {
	attr     string
	bound    string
	optional bool
}

type component struct {
	name       string
	role       string
	slots      []slot
	loadGroups []string
	entries    []assembly.Entry
}

// Browser lists the components of a model in lifecycle order, the slots and
// symbols of one component, and the whole symbol table.
type Browser struct {
	model   string
	styles  viz.Styles
	state   state
	cursor  int
	offset  int
	comps   []component
	entries []assembly.Entry

	width  int
	height int
}

// NewBrowser reads the components and descriptions of a once the model has
// been defined.
func NewBrowser(a *assembly.Assembly, th viz.Theme) (*Browser, error) {
	models, err := a.Components()
	if err != nil {
		return nil, err
	}
	entries, err := a.Descriptions()
	if err != nil {
		return nil, err
	}
	byOwner := make(map[string][]assembly.Entry)
	for _, e := range entries {
		byOwner[e.Owner] = append(byOwner[e.Owner], e)
	}

	comps := make([]component, len(models))
	for i, m := range models {
		c := component{name: m.Name(), role: roleOf(m), entries: byOwner[m.Name()]}
		for _, r := range m.Core().Requirements() {
			s := slot{attr: r.Attribute(), optional: r.IsOptional()}
			if b := m.Core().Slot(r.Attribute()); b != nil {
				s.bound = b.Name()
			}
			c.slots = append(c.slots, s)
		}
		for _, g := range m.Core().LoadGroups() {
			c.loadGroups = append(c.loadGroups, g.Name())
		}
		comps[i] = c
	}
	return &Browser{
		model:   a.Name(),
		styles:  viz.NewStyles(th),
		comps:   comps,
		entries: entries,
		width:   80,
		height:  24,
	}, nil
}

func roleOf(m core.Model) string {
	switch {
	case m.Core().IsConnection():
		return "connection"
	case m.Core().IsLoadGroup():
		return "load group"
	}
	return "model"
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	}
	return b, nil
}

func (b *Browser) handleKey(msg tea.KeyMsg) (*Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "tab":
		if b.state == stateSymbols {
			b.state = stateComponents
		} else {
			b.state = stateSymbols
			b.offset = 0
		}
		return b, nil
	}

	switch b.state {
	case stateComponents:
		b.componentsKey(msg)
	case stateDetail:
		switch msg.String() {
		case "esc", "backspace", "left", "h":
			b.state = stateComponents
		}
	case stateSymbols:
		b.symbolsKey(msg)
	}
	return b, nil
}

func (b *Browser) componentsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.comps)-1 {
			b.cursor++
		}
	case "enter", " ", "right", "l":
		if len(b.comps) > 0 {
			b.state = stateDetail
		}
	}
}

func (b *Browser) symbolsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if b.offset > 0 {
			b.offset--
		}
	case "down", "j":
		if b.offset < len(b.entries)-b.rows() {
			b.offset++
		}
	case "esc", "backspace":
		b.state = stateComponents
	}
}

// rows is how many symbol lines fit under the header and help line.
func (b *Browser) rows() int {
	return max(b.height-6, 1)
}

func (b *Browser) View() string {
	var body string
	switch b.state {
	case stateComponents:
		body = b.viewComponents()
	case stateDetail:
		body = b.viewDetail()
	case stateSymbols:
		body = b.viewSymbols()
	}
	return b.styles.Title.Render("brim · "+b.model) + "\n" + b.styles.Separator(min(b.width, 60)) + "\n\n" + body
}

func (b *Browser) viewComponents() string {
	var sb strings.Builder
	for i, c := range b.comps {
		marker := "  "
		name := b.styles.Cell.Render(fmt.Sprintf("%-24s", c.name))
		if i == b.cursor {
			marker = b.styles.Header.Render("▸")
			name = b.styles.Dynamic.Render(fmt.Sprintf("%-24s", c.name))
		}
		sb.WriteString(marker + name + b.styles.Label.Render(fmt.Sprintf("%-11s %d symbols", c.role, len(c.entries))) + "\n")
	}
	sb.WriteString("\n" + b.styles.Subtle.Render("↑/↓ select · enter details · tab symbols · q quit"))
	return sb.String()
}

func (b *Browser) viewDetail() string {
	c := b.comps[b.cursor]
	var sb strings.Builder
	sb.WriteString(b.styles.Header.Render(c.name) + b.styles.Label.Render(c.role) + "\n\n")

	if len(c.slots) > 0 {
		sb.WriteString(b.styles.Label.Render("slots") + "\n")
		for _, s := range c.slots {
			bound := s.bound
			if bound == "" {
				bound = "unbound"
				if s.optional {
					bound += " (optional)"
				}
			}
			sb.WriteString(b.styles.Cell.Render(fmt.Sprintf("%-14s → %s", s.attr, bound)) + "\n")
		}
		sb.WriteString("\n")
	}
	if len(c.loadGroups) > 0 {
		sb.WriteString(b.styles.Label.Render("load groups") + "\n")
		sb.WriteString(b.styles.Cell.Render(strings.Join(c.loadGroups, ", ")) + "\n\n")
	}
	if len(c.entries) > 0 {
		sb.WriteString(b.styles.Label.Render("symbols") + "\n")
		for _, e := range c.entries {
			sb.WriteString(b.entryLine(e) + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(b.styles.Subtle.Render("esc back · tab symbols · q quit"))
	return sb.String()
}

func (b *Browser) viewSymbols() string {
	var sb strings.Builder
	end := min(b.offset+b.rows(), len(b.entries))
	for _, e := range b.entries[b.offset:end] {
		sb.WriteString(b.entryLine(e) + b.styles.Label.Render(" "+e.Owner) + "\n")
	}
	sb.WriteString("\n" + b.styles.Subtle.Render(fmt.Sprintf("%d-%d of %d · ↑/↓ scroll · tab components · q quit", b.offset+1, end, len(b.entries))))
	return sb.String()
}

func (b *Browser) entryLine(e assembly.Entry) string {
	name := fmt.Sprintf("%-28s", e.Symbol.Name())
	if e.Symbol.IsDynamic() {
		return b.styles.Dynamic.Render(name) + b.styles.Cell.Render(e.Description)
	}
	return b.styles.Cell.Render(name) + b.styles.Cell.Render(e.Description)
}

// Run opens the browser on the alternate screen until the user quits.
func Run(a *assembly.Assembly, th viz.Theme) error {
	b, err := NewBrowser(a, th)
	if err != nil {
		return err
	}
	p := tea.NewProgram(b, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
