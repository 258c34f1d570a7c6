// Package project applies an optional named view and a global detail
// level to a validated Schema IR, producing the Render Schema consumed
// by layout and emission.
package project

import (
	"fmt"

	"github.com/dshills/erdc/pkg/ir"
)

// UnknownView reports a view name requested at compile time that isn't
// declared in the schema.
type UnknownView struct {
	Name string
}

func (e *UnknownView) Error() string {
	return fmt.Sprintf("unknown view %q", e.Name)
}

// InvalidDetail reports a detail-level string outside the allowed set
// ("all", "pk_fk", "pk", "tables").
type InvalidDetail struct {
	Name string
}

func (e *InvalidDetail) Error() string {
	return fmt.Sprintf("invalid detail level %q, must be one of: tables, pk, pk_fk, all", e.Name)
}

// ParseDetailLevel resolves a detail-level string to an ir.DetailLevel.
func ParseDetailLevel(name string) (ir.DetailLevel, error) {
	d, ok := ir.DetailLevelByName[name]
	if !ok {
		return 0, &InvalidDetail{Name: name}
	}
	return d, nil
}

// Project restricts s to the entities named by view (or every entity, if
// view is ""), filters each surviving entity's columns by detail, and
// drops any relationship whose endpoint was excluded. Ordering is
// inherited from s.
func Project(s *ir.Schema, view string, detail ir.DetailLevel) (*ir.RenderSchema, error) {
	selected, err := selectedEntitySet(s, view)
	if err != nil {
		return nil, err
	}

	out := &ir.RenderSchema{
		Entities:    make(map[string]*ir.RenderEntity),
		Arrangement: s.Arrangement,
	}

	for _, name := range s.EntityOrder {
		if !selected[name] {
			continue
		}
		e := s.Entities[name]
		out.EntityOrder = append(out.EntityOrder, name)
		out.Entities[name] = &ir.RenderEntity{
			Name:    name,
			Columns: filterColumns(e.Columns, detail),
		}
	}

	for _, rel := range s.Relationships {
		if selected[rel.LeftEntity] && selected[rel.RightEntity] {
			out.Relationships = append(out.Relationships, rel)
		}
	}

	return out, nil
}

func selectedEntitySet(s *ir.Schema, view string) (map[string]bool, error) {
	if view == "" {
		all := make(map[string]bool, len(s.EntityOrder))
		for _, name := range s.EntityOrder {
			all[name] = true
		}
		return all, nil
	}

	v, ok := s.Views[view]
	if !ok {
		return nil, &UnknownView{Name: view}
	}

	selected := make(map[string]bool, len(v.Include))
	for _, name := range v.Include {
		selected[name] = true
	}
	return selected, nil
}

func filterColumns(cols []ir.Column, detail ir.DetailLevel) []ir.Column {
	var out []ir.Column
	for _, c := range cols {
		if columnVisible(c, detail) {
			out = append(out, c)
		}
	}
	return out
}

func columnVisible(c ir.Column, detail ir.DetailLevel) bool {
	switch detail {
	case ir.DetailAll:
		return true
	case ir.DetailPKFK:
		return c.HasConstraint(ir.ConstraintPK) || c.HasConstraint(ir.ConstraintFK)
	case ir.DetailPK:
		return c.HasConstraint(ir.ConstraintPK)
	case ir.DetailTables:
		return false
	default:
		return true
	}
}
