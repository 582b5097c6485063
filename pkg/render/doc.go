// Package render visualizes the graphs behind canonicalization.
//
// # Overview
//
// This package draws the edge-labeled node-colored DAG ("eldag") that a term
// is encoded into, which is the main debugging aid when a canonicalization
// result looks surprising. It provides:
//
//   - DOT generation from an [eldag.Eldag]
//   - In-process SVG rendering via Graphviz
//   - Generic format conversion (SVG to PDF/PNG)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Summation nodes are drawn as ellipses, index-expression nodes as dashed
// grey boxes, and factor nodes as filled boxes. Edges carry their slot
// number as a label, since edge order is meaningful.
//
// # Usage
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := render.RenderPDF(dot)
//	png, err := render.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
