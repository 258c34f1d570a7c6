// Package validate checks referential integrity of a parsed Schema IR
// (foreign keys, relationship endpoints, view membership, arrangement
// hints) and normalizes it in place — promoting pk to also imply
// not_null, and auto-filling the arrangement hint with any entity it
// omits.
package validate

import "github.com/dshills/erdc/pkg/ir"

// Validate checks s for referential integrity and normalizes it in
// place. It returns the first error encountered; the validator does not
// attempt to collect or report multiple errors.
func Validate(s *ir.Schema) error {
	if err := checkDuplicateEntities(s); err != nil {
		return err
	}
	if err := checkColumnsAndForeignKeys(s); err != nil {
		return err
	}
	if err := checkRelationships(s); err != nil {
		return err
	}
	if err := checkViews(s); err != nil {
		return err
	}
	if err := checkAndFillArrangement(s); err != nil {
		return err
	}
	normalizeConstraints(s)
	return nil
}

func checkDuplicateEntities(s *ir.Schema) error {
	seen := make(map[string]bool, len(s.EntityOrder))
	for _, name := range s.EntityOrder {
		if seen[name] {
			return &DuplicateEntity{Name: name}
		}
		seen[name] = true
	}
	return nil
}

func checkColumnsAndForeignKeys(s *ir.Schema) error {
	for _, e := range s.OrderedEntities() {
		seenCols := make(map[string]bool, len(e.Columns))
		for _, col := range e.Columns {
			if seenCols[col.Name] {
				return &DuplicateColumn{Entity: e.Name, Column: col.Name}
			}
			seenCols[col.Name] = true

			fk, ok := col.FK()
			if !ok {
				continue
			}
			target, exists := s.Entities[fk.TargetEntity]
			if !exists {
				return &UnknownEntity{Name: fk.TargetEntity, Context: "fk"}
			}
			if _, exists := target.Column(fk.TargetColumn); !exists {
				return &UnknownForeignKey{
					SourceEntity: e.Name,
					SourceColumn: col.Name,
					TargetEntity: fk.TargetEntity,
					TargetColumn: fk.TargetColumn,
				}
			}
		}
	}
	return nil
}

func checkRelationships(s *ir.Schema) error {
	for _, rel := range s.Relationships {
		if _, exists := s.Entities[rel.LeftEntity]; !exists {
			return &UnknownEntity{Name: rel.LeftEntity, Context: "relationship"}
		}
		if _, exists := s.Entities[rel.RightEntity]; !exists {
			return &UnknownEntity{Name: rel.RightEntity, Context: "relationship"}
		}
	}
	return nil
}

func checkViews(s *ir.Schema) error {
	seen := make(map[string]bool, len(s.ViewOrder))
	for _, name := range s.ViewOrder {
		if seen[name] {
			return &DuplicateView{Name: name}
		}
		seen[name] = true

		v := s.Views[name]
		for _, inc := range v.Include {
			if _, exists := s.Entities[inc]; !exists {
				return &UnknownEntity{Name: inc, Context: "view " + v.Name}
			}
		}
	}
	return nil
}

// checkAndFillArrangement validates every name in the arrangement hint
// and appends any entity the hint omits as its own row of width 1, in
// declaration order.
func checkAndFillArrangement(s *ir.Schema) error {
	if s.Arrangement == nil {
		return nil
	}

	mentioned := make(map[string]bool)
	for _, row := range s.Arrangement.Rows {
		for _, name := range row {
			if _, exists := s.Entities[name]; !exists {
				return &UnknownEntity{Name: name, Context: "arrangement hint"}
			}
			if mentioned[name] {
				return &DuplicateArrangementEntry{Name: name}
			}
			mentioned[name] = true
		}
	}

	for _, name := range s.EntityOrder {
		if !mentioned[name] {
			s.Arrangement.Rows = append(s.Arrangement.Rows, []string{name})
		}
	}

	return nil
}

// normalizeConstraints promotes pk to additionally imply not_null.
func normalizeConstraints(s *ir.Schema) {
	for _, e := range s.OrderedEntities() {
		for i := range e.Columns {
			col := &e.Columns[i]
			if col.HasConstraint(ir.ConstraintPK) && !col.HasConstraint(ir.ConstraintNotNull) {
				col.Constraints = append(col.Constraints, ir.Constraint{Kind: ir.ConstraintNotNull})
			}
		}
	}
}
