// Package route computes a routed polyline, cardinality markers, and
// label placement for every relationship in a Render Schema: anchor
// selection on rectangular box boundaries, parallel-edge separation,
// self-loops, and orthogonal path shaping between non-adjacent boxes.
package route

import (
	"math"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/layout"
	"github.com/dshills/erdc/pkg/render"
)

// Point is a 2D coordinate in canvas space.
type Point struct {
	X, Y float64
}

// Side identifies which boundary of a box an anchor sits on.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideTop
	SideBottom
)

// RoutedEdge is one relationship's complete rendering geometry.
type RoutedEdge struct {
	SourceEntity string
	TargetEntity string
	SourceCard   ir.Cardinality
	TargetCard   ir.Cardinality

	// Points is the polyline from the source anchor to the target
	// anchor, inclusive.
	Points []Point

	// SourceDir and TargetDir are unit vectors pointing from each
	// anchor into the edge's interior, used to place cardinality
	// markers at a fixed offset inward.
	SourceDir Point
	TargetDir Point

	Label   string
	LabelAt Point // meaningful only when Label != ""
}

// polylineMidpoint returns the polyline's geometric midpoint: the point
// half way along its total length. Used for label placement.
func polylineMidpoint(pts []Point) Point {
	total := 0.0
	lengths := make([]float64, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		lengths[i] = dist(pts[i], pts[i+1])
		total += lengths[i]
	}
	if total == 0 {
		return pts[0]
	}
	target := total / 2
	acc := 0.0
	for i, l := range lengths {
		if acc+l >= target {
			t := (target - acc) / l
			return Point{
				X: pts[i].X + (pts[i+1].X-pts[i].X)*t,
				Y: pts[i].Y + (pts[i+1].Y-pts[i].Y)*t,
			}
		}
		acc += l
	}
	return pts[len(pts)-1]
}

func dist(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Hypot(dx, dy)
}

// Route computes a RoutedEdge for every relationship in rs, in
// declaration order.
func Route(rs *ir.RenderSchema, lay *layout.Layout, style render.Style) []RoutedEdge {
	groups := groupByEndpoints(rs.Relationships)
	seen := make(map[string]int) // group key -> next index within group

	out := make([]RoutedEdge, 0, len(rs.Relationships))
	for _, rel := range rs.Relationships {
		key := groupKey(rel.LeftEntity, rel.RightEntity)
		i := seen[key]
		seen[key] = i + 1
		k := len(groups[key])

		if rel.IsSelfReference() {
			out = append(out, routeSelfLoop(rel, lay, style, i, k))
			continue
		}
		out = append(out, routeEdge(rel, lay, style, i, k))
	}
	return out
}

func groupKey(a, b string) string {
	if a <= b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}

func groupByEndpoints(rels []ir.Relationship) map[string][]int {
	groups := make(map[string][]int)
	for idx, rel := range rels {
		key := groupKey(rel.LeftEntity, rel.RightEntity)
		groups[key] = append(groups[key], idx)
	}
	return groups
}

// strideOffset returns the signed separation offset for edge i of k
// edges sharing an endpoint pair: ((i - (k-1)/2) * stride).
func strideOffset(i, k int, stride float64) float64 {
	return (float64(i) - float64(k-1)/2) * stride
}

func routeEdge(rel ir.Relationship, lay *layout.Layout, style render.Style, i, k int) RoutedEdge {
	a := lay.Placements[rel.LeftEntity]
	b := lay.Placements[rel.RightEntity]

	acx, acy := a.Center()
	bcx, bcy := b.Center()
	dx, dy := bcx-acx, bcy-acy

	offset := strideOffset(i, k, style.ParallelStride)

	var sourceAnchor, targetAnchor Point
	var horizontalDominant bool

	if math.Abs(dx) >= math.Abs(dy) {
		horizontalDominant = true
		if dx >= 0 {
			sourceAnchor = sidePoint(a, SideRight, offset)
			targetAnchor = sidePoint(b, SideLeft, offset)
		} else {
			sourceAnchor = sidePoint(a, SideLeft, offset)
			targetAnchor = sidePoint(b, SideRight, offset)
		}
	} else {
		if dy >= 0 {
			sourceAnchor = sidePoint(a, SideBottom, offset)
			targetAnchor = sidePoint(b, SideTop, offset)
		} else {
			sourceAnchor = sidePoint(a, SideTop, offset)
			targetAnchor = sidePoint(b, SideBottom, offset)
		}
	}

	points := orthogonalPath(sourceAnchor, targetAnchor, horizontalDominant, style)

	edge := RoutedEdge{
		SourceEntity: rel.LeftEntity,
		TargetEntity: rel.RightEntity,
		SourceCard:   rel.LeftCard,
		TargetCard:   rel.RightCard,
		Points:       points,
		SourceDir:    unit(points[1].X-points[0].X, points[1].Y-points[0].Y),
		TargetDir:    unit(points[len(points)-2].X-points[len(points)-1].X, points[len(points)-2].Y-points[len(points)-1].Y),
	}

	if label := rel.EdgeLabel(); label != "" {
		edge.Label = label
		edge.LabelAt = polylineMidpoint(points)
	}

	return edge
}

// sidePoint returns the midpoint of the given side of p's box, displaced
// along the side by offset to separate parallel edges.
func sidePoint(p *layout.Placement, side Side, offset float64) Point {
	minX, minY, maxX, maxY := p.Bounds()
	switch side {
	case SideRight:
		return Point{X: maxX, Y: (minY+maxY)/2 + offset}
	case SideLeft:
		return Point{X: minX, Y: (minY+maxY)/2 + offset}
	case SideBottom:
		return Point{X: (minX+maxX)/2 + offset, Y: maxY}
	default: // SideTop
		return Point{X: (minX+maxX)/2 + offset, Y: minY}
	}
}

// orthogonalPath builds the polyline between two anchors. A straight
// segment is used when the anchors already align on the non-dominant
// axis; otherwise the edge leaves the source for half the configured
// gap, turns, traverses, turns again, and approaches the target —
// covering both same-row/same-column layouts (with a stride-induced
// two-bend detour) and fully diagonal placements.
func orthogonalPath(a, b Point, horizontalDominant bool, style render.Style) []Point {
	if horizontalDominant {
		if a.Y == b.Y {
			return []Point{a, b}
		}
		turnX := a.X + math.Copysign(style.GapX/2, b.X-a.X)
		return []Point{a, {X: turnX, Y: a.Y}, {X: turnX, Y: b.Y}, b}
	}
	if a.X == b.X {
		return []Point{a, b}
	}
	turnY := a.Y + math.Copysign(style.GapY/2, b.Y-a.Y)
	return []Point{a, {X: a.X, Y: turnY}, {X: b.X, Y: turnY}, b}
}

func unit(dx, dy float64) Point {
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{X: 1, Y: 0}
	}
	return Point{X: dx / l, Y: dy / l}
}

// routeSelfLoop draws a rectangular detour on the entity's right side.
// Nested parallel self-loops (k > 1) grow their radius by LoopStep and
// spread their exit/entry points using the same stride policy as
// ordinary parallel edges.
func routeSelfLoop(rel ir.Relationship, lay *layout.Layout, style render.Style, i, k int) RoutedEdge {
	p := lay.Placements[rel.LeftEntity]
	_, minY, maxX, maxY := p.Bounds()

	midY := (minY + maxY) / 2
	halfSpan := p.H / 4
	if halfSpan <= 0 {
		halfSpan = style.LoopRadius / 4
	}

	offset := strideOffset(i, k, style.ParallelStride)
	exitY := midY - halfSpan + offset
	entryY := midY + halfSpan + offset
	radius := style.LoopRadius + float64(i)*style.LoopStep

	p0 := Point{X: maxX, Y: exitY}
	p1 := Point{X: maxX + radius, Y: exitY}
	p2 := Point{X: maxX + radius, Y: entryY}
	p3 := Point{X: maxX, Y: entryY}

	points := []Point{p0, p1, p2, p3}

	edge := RoutedEdge{
		SourceEntity: rel.LeftEntity,
		TargetEntity: rel.RightEntity,
		SourceCard:   rel.LeftCard,
		TargetCard:   rel.RightCard,
		Points:       points,
		SourceDir:    unit(p1.X-p0.X, p1.Y-p0.Y),
		TargetDir:    unit(p2.X-p3.X, p2.Y-p3.Y),
	}

	if label := rel.EdgeLabel(); label != "" {
		edge.Label = label
		edge.LabelAt = polylineMidpoint(points)
	}

	return edge
}
