package ir

// DetailLevel selects which columns survive view/detail projection.
type DetailLevel int

const (
	DetailAll DetailLevel = iota
	DetailPKFK
	DetailPK
	DetailTables
)

// DetailLevelByName maps the CLI/library detail string to a DetailLevel.
var DetailLevelByName = map[string]DetailLevel{
	"all":    DetailAll,
	"pk_fk":  DetailPKFK,
	"pk":     DetailPK,
	"tables": DetailTables,
}

// String returns the canonical name of a DetailLevel.
func (d DetailLevel) String() string {
	switch d {
	case DetailAll:
		return "all"
	case DetailPKFK:
		return "pk_fk"
	case DetailPK:
		return "pk"
	case DetailTables:
		return "tables"
	default:
		return "unknown"
	}
}

// RenderEntity is an Entity after detail-level column filtering.
type RenderEntity struct {
	Name    string
	Columns []Column
}

// RenderSchema is the post-projection, post-filter structure consumed by
// the layout engine, edge router, and SVG emitter. Entity and relationship
// order is inherited from the source Schema.
type RenderSchema struct {
	EntityOrder   []string
	Entities      map[string]*RenderEntity
	Relationships []Relationship
	Arrangement   *ArrangementHint
}

// OrderedEntities returns entities in declaration order.
func (r *RenderSchema) OrderedEntities() []*RenderEntity {
	out := make([]*RenderEntity, 0, len(r.EntityOrder))
	for _, name := range r.EntityOrder {
		out = append(out, r.Entities[name])
	}
	return out
}
