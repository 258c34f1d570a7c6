// Package metrics computes intrinsic entity box dimensions from a fixed
// monospace text model: a character advance, line height, and padding.
// Non-ASCII codepoints are treated as double-width, a documented
// heuristic standing in for real font metrics.
package metrics

import (
	"math"
	"strings"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/render"
)

// Box holds the intrinsic width/height of one entity's rendered box,
// before layout assigns it a position.
type Box struct {
	Width  float64
	Height float64
}

// RuneWidth returns the advance of a single rune in character-width
// units: 1 for ASCII (U+0000..U+007F), 2 for everything else.
func RuneWidth(r rune) float64 {
	if r <= 0x7F {
		return 1
	}
	return 2
}

// advanceUnits sums the character-width advance of every rune in s.
func advanceUnits(s string) float64 {
	var total float64
	for _, r := range s {
		total += RuneWidth(r)
	}
	return total
}

// RowText renders the single-line text for one column row, in the
// pattern "name type constraints", where constraints abbreviate to
// "PK", "FK", "U", "NN" joined by commas. This is the exact text the
// SVG emitter draws, so metrics measured from it guarantee box
// containment.
func RowText(col ir.Column) string {
	var sb strings.Builder
	sb.WriteString(col.Name)
	sb.WriteByte(' ')
	sb.WriteString(col.Type.String())
	if len(col.Constraints) > 0 {
		sb.WriteByte(' ')
		for i, c := range col.Constraints {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(c.Abbrev())
		}
	}
	return sb.String()
}

// HeaderText returns the text rendered in an entity's header band.
func HeaderText(name string) string {
	return name
}

// Measure computes the intrinsic box dimensions for an entity after
// detail-level filtering. rows is len(e.Columns); a "tables"-level
// entity (zero visible columns) still gets a header-only box.
func Measure(e *ir.RenderEntity, style render.Style) Box {
	headerWidth := style.CharWidth*advanceUnits(HeaderText(e.Name)) + 2*style.Padding

	maxRowWidth := 0.0
	for _, col := range e.Columns {
		w := style.CharWidth*advanceUnits(RowText(col)) + 2*style.Padding
		if w > maxRowWidth {
			maxRowWidth = w
		}
	}

	width := headerWidth
	if maxRowWidth > width {
		width = maxRowWidth
	}
	width = roundUpToMultiple(width, style.BoxWidthMultiple)

	height := style.HeaderHeight + style.LineHeight*float64(len(e.Columns)) + 2*style.Padding

	return Box{Width: width, Height: height}
}

func roundUpToMultiple(v, multiple float64) float64 {
	if multiple <= 0 {
		return v
	}
	return math.Ceil(v/multiple) * multiple
}
