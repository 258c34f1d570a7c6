package svg

import (
	"strings"
	"testing"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/layout"
	"github.com/dshills/erdc/pkg/render"
	"github.com/dshills/erdc/pkg/route"
)

func TestNumFormatting(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		1:      "1",
		1.5:    "1.5",
		1.999:  "2",
		-0.001: "0",
		100.12: "100.12",
	}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteProducesViewBoxAndEntities(t *testing.T) {
	rs := &ir.RenderSchema{
		EntityOrder: []string{"A"},
		Entities: map[string]*ir.RenderEntity{
			"A": {Name: "A", Columns: []ir.Column{
				{Name: "id", Type: ir.TypeInt, Constraints: []ir.Constraint{{Kind: ir.ConstraintPK}}},
			}},
		},
	}
	style := render.DefaultStyle()
	lay := layout.Build(rs, style)
	edges := route.Route(rs, lay, style)
	svg := Write(rs, lay, edges, style)

	s := string(svg)
	if !strings.HasPrefix(s, "<svg") {
		t.Fatal("output should start with <svg")
	}
	if !strings.Contains(s, "viewBox=") {
		t.Error("missing viewBox")
	}
	if !strings.Contains(s, `data-name="A"`) {
		t.Error("missing entity A")
	}
	if !strings.HasSuffix(strings.TrimSpace(s), "</svg>") {
		t.Error("output should end with </svg>")
	}
}

func TestEscape(t *testing.T) {
	got := escape(`a<b>&"c"`)
	want := "a&lt;b&gt;&amp;&quot;c&quot;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
