package parser

import (
	"testing"

	"github.com/dshills/erdc/pkg/ir"
)

func mustParse(t *testing.T, src string) *ir.Schema {
	t.Helper()
	s, err := Parse(src)
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return s
}

func TestParseEntityWithConstraints(t *testing.T) {
	s := mustParse(t, `entity A { id int pk name string not null email string unique }`)
	if len(s.EntityOrder) != 1 || s.EntityOrder[0] != "A" {
		t.Fatalf("entity order: %+v", s.EntityOrder)
	}
	a := s.Entities["A"]
	if len(a.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(a.Columns))
	}
	if !a.Columns[0].HasConstraint(ir.ConstraintPK) {
		t.Error("id should be pk")
	}
	if !a.Columns[1].HasConstraint(ir.ConstraintNotNull) {
		t.Error("name should be not null")
	}
	if !a.Columns[2].HasConstraint(ir.ConstraintUnique) {
		t.Error("email should be unique")
	}
}

func TestParseForeignKey(t *testing.T) {
	s := mustParse(t, `entity Post { author_id int fk -> User.id }`)
	col := s.Entities["Post"].Columns[0]
	fk, ok := col.FK()
	if !ok {
		t.Fatal("expected fk constraint")
	}
	if fk.TargetEntity != "User" || fk.TargetColumn != "id" {
		t.Errorf("got fk -> %s.%s", fk.TargetEntity, fk.TargetColumn)
	}
}

func TestParseHintLevel(t *testing.T) {
	s := mustParse(t, `entity A @hint.level=2 { id int pk }`)
	lv := s.Entities["A"].LevelHint
	if lv == nil || *lv != 2 {
		t.Fatalf("got %v, want 2", lv)
	}
}

func TestParseRelationshipCardinalities(t *testing.T) {
	s := mustParse(t, `
entity A { id int pk }
entity B { id int pk }
rel {
  A 1 -- * B : "owns"
  A 0..1 -- 1..* B as members
}`)
	if len(s.Relationships) != 2 {
		t.Fatalf("got %d relationships, want 2", len(s.Relationships))
	}
	r0 := s.Relationships[0]
	if r0.LeftCard != ir.CardOne || r0.RightCard != ir.CardMany || r0.Label != "owns" {
		t.Errorf("r0 = %+v", r0)
	}
	r1 := s.Relationships[1]
	if r1.LeftCard != ir.CardZeroOne || r1.RightCard != ir.CardOneMany || r1.Role != "members" {
		t.Errorf("r1 = %+v", r1)
	}
}

func TestParseSelfReference(t *testing.T) {
	s := mustParse(t, `
entity N { id int pk parent_id int fk -> N.id }
rel { N 1 -- * N : "parent" }`)
	rel := s.Relationships[0]
	if !rel.IsSelfReference() {
		t.Error("expected self-reference")
	}
	if rel.EdgeLabel() != "parent" {
		t.Errorf("got label %q", rel.EdgeLabel())
	}
}

func TestParseView(t *testing.T) {
	s := mustParse(t, `view Public { include A, B, C }`)
	v := s.Views["Public"]
	if v == nil {
		t.Fatal("view not registered")
	}
	if len(v.Include) != 3 || v.Include[2] != "C" {
		t.Errorf("include = %+v", v.Include)
	}
}

func TestParseArrangementHint(t *testing.T) {
	s := mustParse(t, `@hint.arrangement={ A B; C }`)
	if s.Arrangement == nil {
		t.Fatal("arrangement not set")
	}
	if len(s.Arrangement.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(s.Arrangement.Rows))
	}
	if len(s.Arrangement.Rows[0]) != 2 || s.Arrangement.Rows[0][1] != "B" {
		t.Errorf("row 0 = %+v", s.Arrangement.Rows[0])
	}
}

func TestParseUnexpectedTokenError(t *testing.T) {
	_, err := Parse(`entity { }`)
	if err == nil {
		t.Fatal("expected ParseError")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestParseInvalidCardinality(t *testing.T) {
	_, err := Parse(`
entity A { id int pk }
entity B { id int pk }
rel { A 2 -- * B }`)
	if err == nil {
		t.Fatal("expected InvalidCardinality error")
	}
	if _, ok := err.(*InvalidCardinality); !ok {
		t.Fatalf("got %T, want *InvalidCardinality", err)
	}
}
