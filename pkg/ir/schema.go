// Package ir defines the Schema IR produced by the parser: entities with
// typed, constrained columns, relationships, views, and layout hints.
// Values are constructed once by the parser, normalized in place by the
// validator, and consumed immutably by every later stage.
package ir

import (
	"fmt"
	"strings"
)

// ColumnType enumerates the allowed column types.
type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeString
	TypeDecimal
	TypeTimestamp
	TypeBoolean
	TypeText
)

var columnTypeNames = map[ColumnType]string{
	TypeInt:       "int",
	TypeString:    "string",
	TypeDecimal:   "decimal",
	TypeTimestamp: "timestamp",
	TypeBoolean:   "boolean",
	TypeText:      "text",
}

// ColumnTypeByName maps the DSL keyword to a ColumnType.
var ColumnTypeByName = map[string]ColumnType{
	"int":       TypeInt,
	"string":    TypeString,
	"decimal":   TypeDecimal,
	"timestamp": TypeTimestamp,
	"boolean":   TypeBoolean,
	"text":      TypeText,
}

// String returns the DSL keyword for a ColumnType.
func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ConstraintKind enumerates the kinds of inline column constraints.
type ConstraintKind int

const (
	ConstraintPK ConstraintKind = iota
	ConstraintUnique
	ConstraintNotNull
	ConstraintFK
)

// Constraint is a tagged-variant constraint on a column. FK carries the
// target entity/column pair; the other kinds carry no payload.
type Constraint struct {
	Kind         ConstraintKind
	TargetEntity string // only set for ConstraintFK
	TargetColumn string // only set for ConstraintFK
}

// Abbrev returns the short label used in rendered column rows
// ("PK", "FK", "U", "NN").
func (c Constraint) Abbrev() string {
	switch c.Kind {
	case ConstraintPK:
		return "PK"
	case ConstraintUnique:
		return "U"
	case ConstraintNotNull:
		return "NN"
	case ConstraintFK:
		return "FK"
	default:
		return "?"
	}
}

// Column is a single typed, constrained field of an Entity.
type Column struct {
	Name        string
	Type        ColumnType
	Constraints []Constraint
}

// HasConstraint reports whether the column carries a constraint of kind k.
func (c *Column) HasConstraint(k ConstraintKind) bool {
	for _, cons := range c.Constraints {
		if cons.Kind == k {
			return true
		}
	}
	return false
}

// FK returns the column's foreign-key constraint, if any.
func (c *Column) FK() (Constraint, bool) {
	for _, cons := range c.Constraints {
		if cons.Kind == ConstraintFK {
			return cons, true
		}
	}
	return Constraint{}, false
}

// Entity is a table-like record: a name and an ordered list of columns.
type Entity struct {
	Name      string
	Columns   []Column
	LevelHint *int // @hint.level, nil if absent
}

// Column looks up a column by name; ok is false if no such column exists.
func (e *Entity) Column(name string) (Column, bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Cardinality enumerates relationship endpoint multiplicities.
type Cardinality int

const (
	CardOne Cardinality = iota
	CardZeroOne
	CardMany
	CardOneMany
)

var cardinalityNames = map[Cardinality]string{
	CardOne:     "1",
	CardZeroOne: "0..1",
	CardMany:    "*",
	CardOneMany: "1..*",
}

// String renders the cardinality back to its DSL atom.
func (c Cardinality) String() string {
	if name, ok := cardinalityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cardinality(%d)", int(c))
}

// Relationship is a cardinality-annotated edge between two entities.
// Endpoints may name the same entity (a self-reference).
type Relationship struct {
	LeftEntity  string
	LeftCard    Cardinality
	RightEntity string
	RightCard   Cardinality
	Label       string // optional, "" if absent
	Role        string // optional, "" if absent
}

// IsSelfReference reports whether both endpoints name the same entity.
func (r *Relationship) IsSelfReference() bool {
	return r.LeftEntity == r.RightEntity
}

// EdgeLabel returns the text to render on the edge: the explicit label if
// present, otherwise the role, otherwise "".
func (r *Relationship) EdgeLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Role
}

// View names a subset of entities to include in a projection.
type View struct {
	Name    string
	Include []string
}

// ArrangementHint fixes the grid topology: an ordered list of rows, each
// an ordered list of entity names.
type ArrangementHint struct {
	Rows [][]string
}

// Schema is the complete parsed representation of one DSL source file.
// Entities, relationships, and views preserve declaration order so that
// downstream output is deterministic.
type Schema struct {
	EntityOrder   []string // declaration order of entity names
	Entities      map[string]*Entity
	Relationships []Relationship
	ViewOrder     []string
	Views         map[string]*View
	Arrangement   *ArrangementHint // nil if no @hint.arrangement was declared
}

// NewSchema creates an empty Schema with initialized maps.
func NewSchema() *Schema {
	return &Schema{
		Entities: make(map[string]*Entity),
		Views:    make(map[string]*View),
	}
}

// AddEntity appends an entity in declaration order. The caller is
// responsible for duplicate-name checking (done by the validator).
func (s *Schema) AddEntity(e *Entity) {
	s.EntityOrder = append(s.EntityOrder, e.Name)
	s.Entities[e.Name] = e
}

// AddView appends a view in declaration order.
func (s *Schema) AddView(v *View) {
	s.ViewOrder = append(s.ViewOrder, v.Name)
	s.Views[v.Name] = v
}

// OrderedEntities returns entities in declaration order.
func (s *Schema) OrderedEntities() []*Entity {
	out := make([]*Entity, 0, len(s.EntityOrder))
	for _, name := range s.EntityOrder {
		out = append(out, s.Entities[name])
	}
	return out
}

// Stats is a text-only summary of a Schema's shape, printed by the CLI
// under -verbose. It never feeds into SVG output.
type Stats struct {
	Entities      int
	Columns       int
	Relationships int
	Views         int
}

// Stats computes summary counts in declaration order.
func (s *Schema) Stats() Stats {
	st := Stats{
		Entities:      len(s.EntityOrder),
		Relationships: len(s.Relationships),
		Views:         len(s.ViewOrder),
	}
	for _, e := range s.OrderedEntities() {
		st.Columns += len(e.Columns)
	}
	return st
}

// String renders a one-line human-readable summary, e.g.
// "4 entities, 11 columns, 3 relationships, 1 views".
func (s *Schema) String() string {
	st := s.Stats()
	return fmt.Sprintf("%d entities, %d columns, %d relationships, %d views",
		st.Entities, st.Columns, st.Relationships, st.Views)
}

// EntityNames returns entity names in declaration order, joined for
// display.
func (s *Schema) EntityNames() string {
	return strings.Join(s.EntityOrder, ", ")
}
