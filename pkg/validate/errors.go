package validate

import "fmt"

// DuplicateEntity reports two entities declared with the same name.
type DuplicateEntity struct {
	Name string
}

func (e *DuplicateEntity) Error() string {
	return fmt.Sprintf("duplicate entity %q", e.Name)
}

// DuplicateColumn reports two columns within one entity sharing a name.
type DuplicateColumn struct {
	Entity string
	Column string
}

func (e *DuplicateColumn) Error() string {
	return fmt.Sprintf("entity %q: duplicate column %q", e.Entity, e.Column)
}

// DuplicateView reports two views declared with the same name.
type DuplicateView struct {
	Name string
}

func (e *DuplicateView) Error() string {
	return fmt.Sprintf("duplicate view %q", e.Name)
}

// UnknownEntity reports a reference (fk, relationship endpoint,
// arrangement hint, or view include) to an entity that doesn't exist.
type UnknownEntity struct {
	Name    string
	Context string // where the reference appeared, e.g. "relationship", "fk", "view x", "arrangement hint"
}

func (e *UnknownEntity) Error() string {
	return fmt.Sprintf("unknown entity %q referenced in %s", e.Name, e.Context)
}

// UnknownForeignKey reports an fk constraint whose target column does not
// exist on an otherwise-valid target entity.
type UnknownForeignKey struct {
	SourceEntity string
	SourceColumn string
	TargetEntity string
	TargetColumn string
}

func (e *UnknownForeignKey) Error() string {
	return fmt.Sprintf("%s.%s: fk target %s.%s does not exist",
		e.SourceEntity, e.SourceColumn, e.TargetEntity, e.TargetColumn)
}

// DuplicateArrangementEntry reports an entity name listed more than once
// across the rows of an @hint.arrangement block.
type DuplicateArrangementEntry struct {
	Name string
}

func (e *DuplicateArrangementEntry) Error() string {
	return fmt.Sprintf("entity %q appears more than once in arrangement hint", e.Name)
}
