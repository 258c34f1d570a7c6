// Package svg assembles the final SVG document from a projected
// RenderSchema, its layout placements, and routed edges: fixed
// attribute order, two-decimal coordinates, and the cardinality marker
// and label glyphs.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/layout"
	"github.com/dshills/erdc/pkg/metrics"
	"github.com/dshills/erdc/pkg/render"
	"github.com/dshills/erdc/pkg/route"
)

// Write emits the complete SVG document for a projected, laid-out,
// routed schema. Output is byte-stable: attribute order is fixed and
// every number is formatted with at most two decimals and no trailing
// zeros, so identical input always produces an identical document.
func Write(rs *ir.RenderSchema, lay *layout.Layout, edges []route.RoutedEdge, style render.Style) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(lay.Width), num(lay.Height), num(lay.Width), num(lay.Height))

	for _, e := range edges {
		writeEdge(&buf, e, style)
	}
	for _, name := range rs.EntityOrder {
		writeEntity(&buf, rs.Entities[name], lay.Placements[name], style)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num formats f with at most two decimals and no trailing zeros.
func num(f float64) string {
	r := math.Round(f*100) / 100
	s := strconv.FormatFloat(r, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}

func writeEntity(buf *bytes.Buffer, e *ir.RenderEntity, p *layout.Placement, style render.Style) {
	fmt.Fprintf(buf, `<g class="entity" data-name="%s">`+"\n", escape(e.Name))
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="white" stroke="black"/>`+"\n",
		num(p.X), num(p.Y), num(p.W), num(p.H))

	headerY := p.Y + style.HeaderHeight/2 + style.LineHeight/4
	fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="middle" font-weight="bold">%s</text>`+"\n",
		num(p.X+p.W/2), num(headerY), escape(metrics.HeaderText(e.Name)))

	dividerY := p.Y + style.HeaderHeight
	fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`+"\n",
		num(p.X), num(dividerY), num(p.X+p.W), num(dividerY))

	for i, col := range e.Columns {
		rowY := dividerY + style.Padding + style.LineHeight*float64(i) + style.LineHeight*0.75
		fmt.Fprintf(buf, `<text x="%s" y="%s">%s</text>`+"\n",
			num(p.X+style.Padding), num(rowY), escape(metrics.RowText(col)))
	}

	buf.WriteString("</g>\n")
}

func writeEdge(buf *bytes.Buffer, e route.RoutedEdge, style render.Style) {
	buf.WriteString(`<g class="edge">` + "\n")

	var pts strings.Builder
	for i, p := range e.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		pts.WriteString(num(p.X))
		pts.WriteByte(',')
		pts.WriteString(num(p.Y))
	}
	fmt.Fprintf(buf, `<polyline points="%s" fill="none" stroke="black"/>`+"\n", pts.String())

	writeMarker(buf, e.Points[0], e.SourceDir, e.SourceCard, style)
	writeMarker(buf, e.Points[len(e.Points)-1], e.TargetDir, e.TargetCard, style)

	if e.Label != "" {
		writeLabel(buf, e.LabelAt, e.Label, style)
	}

	buf.WriteString("</g>\n")
}

// writeMarker draws the cardinality glyph at anchor, offset inward
// along dir by style.MarkerOffset: a tick for one, zero-or-one, and
// one-or-many, plus a small circle for zero-or-one, and a crow's-foot
// for many/one-or-many.
func writeMarker(buf *bytes.Buffer, anchor route.Point, dir route.Point, card ir.Cardinality, style render.Style) {
	// perpendicular to dir, for tick and crow's-foot spread
	px, py := -dir.Y, dir.X

	base := route.Point{
		X: anchor.X + dir.X*style.MarkerOffset,
		Y: anchor.Y + dir.Y*style.MarkerOffset,
	}

	switch card {
	case ir.CardOne:
		writeTick(buf, base, px, py, style)
	case ir.CardZeroOne:
		writeTick(buf, base, px, py, style)
		cx := base.X + dir.X*style.MarkerOffset*0.6
		cy := base.Y + dir.Y*style.MarkerOffset*0.6
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="white" stroke="black"/>`+"\n",
			num(cx), num(cy), num(style.MarkerSize*0.5))
	case ir.CardMany:
		writeCrowsFoot(buf, anchor, dir, px, py, style)
	case ir.CardOneMany:
		writeCrowsFoot(buf, anchor, dir, px, py, style)
		writeTick(buf, base, px, py, style)
	}
}

func writeTick(buf *bytes.Buffer, at route.Point, px, py float64, style render.Style) {
	x1 := at.X - px*style.MarkerSize
	y1 := at.Y - py*style.MarkerSize
	x2 := at.X + px*style.MarkerSize
	y2 := at.Y + py*style.MarkerSize
	fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2))
}

func writeCrowsFoot(buf *bytes.Buffer, anchor route.Point, dir route.Point, px, py float64, style render.Style) {
	tip := route.Point{
		X: anchor.X + dir.X*style.MarkerOffset,
		Y: anchor.Y + dir.Y*style.MarkerOffset,
	}
	for _, spread := range []float64{-1, 0, 1} {
		ex := tip.X + px*style.MarkerSize*spread
		ey := tip.Y + py*style.MarkerSize*spread
		fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`+"\n",
			num(anchor.X), num(anchor.Y), num(ex), num(ey))
	}
}

func writeLabel(buf *bytes.Buffer, at route.Point, text string, style render.Style) {
	w := style.CharWidth*float64(len([]rune(text))) + 2*style.Padding
	h := style.LineHeight
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="white" stroke="none"/>`+"\n",
		num(at.X-w/2), num(at.Y-h/2), num(w), num(h))
	fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		num(at.X), num(at.Y+h*0.25), escape(text))
}

func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
