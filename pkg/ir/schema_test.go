package ir

import "testing"

func TestSchemaOrderedEntities(t *testing.T) {
	s := NewSchema()
	s.AddEntity(&Entity{Name: "B"})
	s.AddEntity(&Entity{Name: "A"})
	order := s.OrderedEntities()
	if order[0].Name != "B" || order[1].Name != "A" {
		t.Error("OrderedEntities must preserve declaration order, not sort")
	}
}

func TestRelationshipEdgeLabel(t *testing.T) {
	r := Relationship{Label: "owns", Role: "owner"}
	if r.EdgeLabel() != "owns" {
		t.Error("explicit label should win over role")
	}
	r2 := Relationship{Role: "owner"}
	if r2.EdgeLabel() != "owner" {
		t.Error("role should be used when label is absent")
	}
	r3 := Relationship{}
	if r3.EdgeLabel() != "" {
		t.Error("empty when neither is set")
	}
}

func TestIsSelfReference(t *testing.T) {
	r := Relationship{LeftEntity: "N", RightEntity: "N"}
	if !r.IsSelfReference() {
		t.Error("same entity on both ends should be a self-reference")
	}
}

func TestColumnHasConstraint(t *testing.T) {
	c := Column{Constraints: []Constraint{{Kind: ConstraintPK}}}
	if !c.HasConstraint(ConstraintPK) {
		t.Error("expected pk constraint")
	}
	if c.HasConstraint(ConstraintUnique) {
		t.Error("did not expect unique constraint")
	}
}

func TestStats(t *testing.T) {
	s := NewSchema()
	s.AddEntity(&Entity{Name: "A", Columns: []Column{{Name: "id"}, {Name: "name"}}})
	s.AddEntity(&Entity{Name: "B", Columns: []Column{{Name: "id"}}})
	s.Relationships = []Relationship{{LeftEntity: "A", RightEntity: "B"}}
	s.AddView(&View{Name: "v"})

	st := s.Stats()
	if st.Entities != 2 || st.Columns != 3 || st.Relationships != 1 || st.Views != 1 {
		t.Errorf("got %+v", st)
	}
	if s.String() != "2 entities, 3 columns, 1 relationships, 1 views" {
		t.Errorf("got %q", s.String())
	}
}

func TestCardinalityString(t *testing.T) {
	if CardOneMany.String() != "1..*" {
		t.Errorf("got %q", CardOneMany.String())
	}
}
