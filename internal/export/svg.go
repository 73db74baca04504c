package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/core"
)

const (
	nodeWidth  = 150
	nodeHeight = 36
	gapX       = 30
	gapY       = 60
	margin     = 20
)

type node struct {
	model core.Model
	layer int
	x, y  float64
}

// ComponentTreeSVG draws the components of an assembly in layers, roots on
// top, with an edge from every component to its bound slots and load groups.
func ComponentTreeSVG(a *assembly.Assembly) (string, error) {
	comps, err := a.Components()
	if err != nil {
		return "", err
	}

	parents := make(map[core.Model][]core.Model)
	for _, c := range comps {
		for _, child := range children(c) {
			parents[child] = append(parents[child], c)
		}
	}

	// Longest path from a root; the component graph is acyclic once
	// Components succeeded.
	layerOf := make(map[core.Model]int)
	var layer func(core.Model) int
	layer = func(m core.Model) int {
		if l, ok := layerOf[m]; ok {
			return l
		}
		l := 0
		for _, p := range parents[m] {
			if pl := layer(p) + 1; pl > l {
				l = pl
			}
		}
		layerOf[m] = l
		return l
	}

	var layers [][]*node
	nodes := make(map[core.Model]*node, len(comps))
	for _, c := range comps {
		l := layer(c)
		for len(layers) <= l {
			layers = append(layers, nil)
		}
		n := &node{model: c, layer: l}
		layers[l] = append(layers[l], n)
		nodes[c] = n
	}

	widest := 0
	for _, row := range layers {
		if len(row) > widest {
			widest = len(row)
		}
	}
	width := 2*margin + widest*nodeWidth + max(widest-1, 0)*gapX
	height := 2*margin + len(layers)*nodeHeight + max(len(layers)-1, 0)*gapY

	for l, row := range layers {
		rowWidth := len(row)*nodeWidth + (len(row)-1)*gapX
		offset := float64(width-rowWidth) / 2
		for i, n := range row {
			n.x = offset + float64(i*(nodeWidth+gapX))
			n.y = float64(margin + l*(nodeHeight+gapY))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#444466" stroke-width="1.5">
`, width, height, width, height))

	for _, c := range comps {
		from := nodes[c]
		for _, child := range children(c) {
			to, ok := nodes[child]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, from.x+nodeWidth/2, from.y+nodeHeight, to.x+nodeWidth/2, to.y))
		}
	}
	sb.WriteString("</g>\n<g font-family=\"monospace\" font-size=\"12\" text-anchor=\"middle\">\n")

	for _, c := range comps {
		n := nodes[c]
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%d" height="%d" rx="6" fill="#1a1a2e" stroke="%s"/>
<text x="%.1f" y="%.1f" fill="#ffffff">%s</text>
`, n.x, n.y, nodeWidth, nodeHeight, stroke(c), n.x+nodeWidth/2, n.y+nodeHeight/2+4, html.EscapeString(c.Name())))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

func children(m core.Model) []core.Model {
	return append(m.Core().Submodels(), m.Core().LoadGroups()...)
}

// stroke colors components by role.
func stroke(m core.Model) string {
	switch {
	case m.Core().IsConnection():
		return "#ffaa00"
	case m.Core().IsLoadGroup():
		return "#ff00ff"
	}
	return "#00ffff"
}
