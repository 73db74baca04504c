package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/symbolic"
)

// DescriptionTable renders one row per symbol. Time-varying symbols are
// highlighted.
func DescriptionTable(entries []assembly.Entry, s Styles) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		kind := "constant"
		if e.Symbol.IsDynamic() {
			kind = "dynamic"
		}
		rows[i] = []string{e.Symbol.Name(), kind, e.Owner, e.Description}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers("SYMBOL", "KIND", "OWNER", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Header
			case col == 0 && entries[row].Symbol.IsDynamic():
				return s.Dynamic
			}
			return s.Cell
		})
	return t.Render()
}

// SystemSummary lists what the components contributed to the system.
func SystemSummary(model string, sum symbolic.Summary, s Styles) string {
	sections := []struct {
		label string
		items []string
	}{
		{"bodies", sum.Bodies},
		{"joints", sum.Joints},
		{"coordinates", sum.Coordinates},
		{"speeds", sum.Speeds},
		{"kinematic equations", sum.KinematicEquations},
		{"loads", sum.Loads},
		{"holonomic constraints", sum.HolonomicConstraints},
		{"nonholonomic constraints", sum.NonholonomicConstraints},
		{"auxiliary speeds", sum.AuxiliarySpeeds},
	}

	var b strings.Builder
	b.WriteString(s.Label.Render("inertial frame") + " " + sum.Frame + "\n")
	for _, sec := range sections {
		b.WriteString(s.Label.Render(fmt.Sprintf("%s (%d)", sec.label, len(sec.items))))
		b.WriteString("\n")
		if len(sec.items) == 0 {
			b.WriteString("  " + s.Subtle.Render("none") + "\n")
			continue
		}
		for _, item := range sec.items {
			b.WriteString("  " + item + "\n")
		}
	}
	return s.BoxWithTitle(model, strings.TrimRight(b.String(), "\n"))
}
