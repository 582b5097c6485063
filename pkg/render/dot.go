package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tensorcanon/pkg/eldag"
)

// Options configures eldag diagram rendering.
type Options struct {
	// Detailed includes colour keys and symmetry generator counts in node
	// labels. When false, only the node kind and index are shown.
	Detailed bool
}

// ToDOT converts an eldag to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Edges point from consumer to consumed node (a factor points at its index
// expressions, an index expression at its summations), and each edge is
// labeled with its slot number.
func ToDOT(g *eldag.Eldag, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph eldag {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := 0; i < g.NodeCount(); i++ {
		label := fmtLabel(g, i, opts.Detailed)
		attrs := fmtAttrs(g.Colour(i).Tag, label)
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i < g.NodeCount(); i++ {
		for slot, target := range g.Edges(i) {
			fmt.Fprintf(&buf, "  n%d -> n%d [label=\"%d\"];\n", i, target, slot)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *eldag.Eldag, i int, detailed bool) string {
	colour := g.Colour(i)
	label := fmt.Sprintf("%s %d", colour.Tag, i)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("colour: %s", colour.Key)}
	if symm := g.Symmetry(i); symm != nil {
		parts = append(parts, fmt.Sprintf("generators: %d", len(symm.Generators())))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(tag eldag.Tag, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch tag {
	case eldag.TagSum:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightyellow")
	case eldag.TagExpr:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case eldag.TagFactor:
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}
