// Package layout places entity boxes on a grid derived from an
// arrangement hint (or an automatic square-ish grid), sizing each
// column and row from the measured box dimensions so nothing overflows.
package layout

import (
	"math"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/metrics"
	"github.com/dshills/erdc/pkg/render"
)

// Placement is one entity's assigned box: its intrinsic size plus the
// grid cell and world-space top-left corner the layout engine chose.
type Placement struct {
	Name string
	X, Y float64
	W, H float64
	Row  int
	Col  int
}

// Bounds returns the four sides of the placed box.
func (p *Placement) Bounds() (minX, minY, maxX, maxY float64) {
	return p.X, p.Y, p.X + p.W, p.Y + p.H
}

// Center returns the midpoint of the placed box.
func (p *Placement) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// Layout is the complete spatial placement of every rendered entity.
type Layout struct {
	Order      []string // entity names, declaration order
	Placements map[string]*Placement
	Width      float64 // canvas width including margin
	Height     float64 // canvas height including margin
}

// Build lays out rs under style. Grid topology comes from rs.Arrangement
// when present (after dropping any hinted entity the active view
// excluded — those cells consume no grid space); otherwise entities are
// placed row-major into an auto grid with ceil(sqrt(N)) columns.
func Build(rs *ir.RenderSchema, style render.Style) *Layout {
	grid := gridRows(rs)
	boxes := measureBoxes(rs, style)

	numCols := 0
	for _, row := range grid {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	colWidths := make([]float64, numCols)
	rowHeights := make([]float64, len(grid))

	for i, row := range grid {
		for j, name := range row {
			b := boxes[name]
			if b.Width > colWidths[j] {
				colWidths[j] = b.Width
			}
			if b.Height > rowHeights[i] {
				rowHeights[i] = b.Height
			}
		}
	}

	colX := make([]float64, numCols+1)
	for j := 0; j < numCols; j++ {
		colX[j+1] = colX[j] + colWidths[j] + style.GapX
	}
	rowY := make([]float64, len(grid)+1)
	for i := range grid {
		rowY[i+1] = rowY[i] + rowHeights[i] + style.GapY
	}

	out := &Layout{
		Order:      rs.EntityOrder,
		Placements: make(map[string]*Placement, len(rs.EntityOrder)),
	}

	for i, row := range grid {
		for j, name := range row {
			b := boxes[name]
			cellX := colX[j]
			cellY := rowY[i]
			x := cellX + (colWidths[j]-b.Width)/2
			out.Placements[name] = &Placement{
				Name: name,
				X:    style.Margin + x,
				Y:    style.Margin + cellY,
				W:    b.Width,
				H:    b.Height,
				Row:  i,
				Col:  j,
			}
		}
	}

	canvasW := 0.0
	for _, w := range colWidths {
		canvasW += w + style.GapX
	}
	if numCols > 0 {
		canvasW -= style.GapX
	}
	canvasH := 0.0
	for _, h := range rowHeights {
		canvasH += h + style.GapY
	}
	if len(grid) > 0 {
		canvasH -= style.GapY
	}

	out.Width = canvasW + 2*style.Margin
	out.Height = canvasH + 2*style.Margin

	return out
}

func measureBoxes(rs *ir.RenderSchema, style render.Style) map[string]metrics.Box {
	boxes := make(map[string]metrics.Box, len(rs.EntityOrder))
	for _, e := range rs.OrderedEntities() {
		boxes[e.Name] = metrics.Measure(e, style)
	}
	return boxes
}

// gridRows determines grid topology. Ties and omissions are resolved by
// declaration order, never by map iteration, so the result is
// deterministic.
func gridRows(rs *ir.RenderSchema) [][]string {
	if rs.Arrangement != nil {
		var rows [][]string
		for _, hintRow := range rs.Arrangement.Rows {
			var row []string
			for _, name := range hintRow {
				if _, ok := rs.Entities[name]; ok {
					row = append(row, name)
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
		return rows
	}

	n := len(rs.EntityOrder)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}

	var rows [][]string
	var current []string
	for _, name := range rs.EntityOrder {
		current = append(current, name)
		if len(current) == cols {
			rows = append(rows, current)
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}
