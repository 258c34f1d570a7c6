package metrics

import (
	"testing"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/render"
)

func TestRuneWidth(t *testing.T) {
	if RuneWidth('a') != 1 {
		t.Error("ASCII rune should advance 1 unit")
	}
	if RuneWidth('日') != 2 {
		t.Error("non-ASCII rune should advance 2 units")
	}
}

func TestRowTextFormat(t *testing.T) {
	col := ir.Column{
		Name: "id",
		Type: ir.TypeInt,
		Constraints: []ir.Constraint{
			{Kind: ir.ConstraintPK},
			{Kind: ir.ConstraintNotNull},
		},
	}
	got := RowText(col)
	want := "id int PK,NN"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMeasureBoxContainment(t *testing.T) {
	style := render.DefaultStyle()
	e := &ir.RenderEntity{
		Name: "Customer",
		Columns: []ir.Column{
			{Name: "id", Type: ir.TypeInt, Constraints: []ir.Constraint{{Kind: ir.ConstraintPK}}},
			{Name: "full_name_of_the_customer", Type: ir.TypeString},
		},
	}
	box := Measure(e, style)

	for _, col := range e.Columns {
		rowWidth := style.CharWidth*advanceUnits(RowText(col)) + 2*style.Padding
		if box.Width < rowWidth {
			t.Errorf("box width %v < row %q width %v", box.Width, RowText(col), rowWidth)
		}
	}
	headerWidth := style.CharWidth*advanceUnits(HeaderText(e.Name)) + 2*style.Padding
	if box.Width < headerWidth {
		t.Errorf("box width %v < header width %v", box.Width, headerWidth)
	}

	minHeight := style.HeaderHeight + style.LineHeight*float64(len(e.Columns)) + 2*style.Padding
	if box.Height < minHeight {
		t.Errorf("box height %v < minimum %v", box.Height, minHeight)
	}
}

func TestMeasureTablesLevelEmptyColumns(t *testing.T) {
	style := render.DefaultStyle()
	e := &ir.RenderEntity{Name: "X"}
	box := Measure(e, style)
	if box.Height != style.HeaderHeight+2*style.Padding {
		t.Errorf("got height %v", box.Height)
	}
}

func TestRoundUpToMultiple(t *testing.T) {
	if got := roundUpToMultiple(13, 8); got != 16 {
		t.Errorf("got %v, want 16", got)
	}
	if got := roundUpToMultiple(16, 8); got != 16 {
		t.Errorf("got %v, want 16", got)
	}
}
