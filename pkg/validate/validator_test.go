package validate

import (
	"testing"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/parser"
)

func mustParse(t *testing.T, src string) *ir.Schema {
	t.Helper()
	s, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return s
}

func TestValidatePromotesPKToNotNull(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }`)
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := s.Entities["A"].Columns[0]
	if !col.HasConstraint(ir.ConstraintNotNull) {
		t.Error("pk column should imply not null")
	}
}

func TestValidateDuplicateEntity(t *testing.T) {
	s := &ir.Schema{
		EntityOrder: []string{"A", "A"},
		Entities: map[string]*ir.Entity{
			"A": {Name: "A"},
		},
	}
	err := Validate(s)
	if _, ok := err.(*DuplicateEntity); !ok {
		t.Fatalf("got %T, want *DuplicateEntity", err)
	}
}

func TestValidateUnknownForeignKey(t *testing.T) {
	s := mustParse(t, `entity A { ref_id int fk -> B.missing }
entity B { id int pk }`)
	err := Validate(s)
	if _, ok := err.(*UnknownForeignKey); !ok {
		t.Fatalf("got %T, want *UnknownForeignKey", err)
	}
}

func TestValidateUnknownEntityInRelationship(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }
rel { A 1 -- * Ghost }`)
	err := Validate(s)
	if _, ok := err.(*UnknownEntity); !ok {
		t.Fatalf("got %T, want *UnknownEntity", err)
	}
}

func TestValidateArrangementAutoFill(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }
entity B { id int pk }
entity C { id int pk }
@hint.arrangement={ A B }`)
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Arrangement.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(s.Arrangement.Rows))
	}
	last := s.Arrangement.Rows[1]
	if len(last) != 1 || last[0] != "C" {
		t.Errorf("auto-filled row = %+v, want [C]", last)
	}
}

func TestValidateArrangementUnknownEntity(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }
@hint.arrangement={ A Ghost }`)
	err := Validate(s)
	if _, ok := err.(*UnknownEntity); !ok {
		t.Fatalf("got %T, want *UnknownEntity", err)
	}
}

func TestValidateArrangementDuplicateEntry(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }
entity B { id int pk }
@hint.arrangement={ A; A B }`)
	err := Validate(s)
	if _, ok := err.(*DuplicateArrangementEntry); !ok {
		t.Fatalf("got %T, want *DuplicateArrangementEntry", err)
	}
}

func TestValidateDuplicateView(t *testing.T) {
	s := mustParse(t, `entity A { id int pk }
view V { include A }
view V { include A }`)
	err := Validate(s)
	if _, ok := err.(*DuplicateView); !ok {
		t.Fatalf("got %T, want *DuplicateView", err)
	}
}
