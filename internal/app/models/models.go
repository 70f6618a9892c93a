package models

// Record is implemented by every persisted entity. Fields returns the
// business column names together with their current values, in the order the
// stores use for INSERT/UPDATE statements. Identity and timestamps live in
// the embedded Base and are managed by the stores, never by callers.
type Record interface {
	Meta() *Base
	Fields() ([]string, []any)
}

// RecordOf ties a pointer type to its underlying struct so generic stores
// and controllers can allocate and scan concrete records.
type RecordOf[T any] interface {
	Record
	*T
}

// Validator is implemented by records that carry cross-field rules which
// binding tags cannot express.
type Validator interface {
	Validate() error
}

// Ref declares a foreign-key column and the parent table it must resolve in.
type Ref struct {
	Column string
	Table  string
	Entity string
}

// Dependent declares a child table holding foreign keys into this entity.
// Deletes are rejected while dependent rows exist.
type Dependent struct {
	Table  string
	Column string
}

// Descriptor describes one entity kind to the generic store, service and
// controller stack: where it lives, how it is addressed, what may be sorted
// on, and its relational edges.
type Descriptor struct {
	Name       string
	Path       string
	Table      string
	Sortable   []string
	Refs       []Ref
	Dependents []Dependent
	ReadOnly   bool
}

// SortColumn reports whether name is a sortable column of the entity.
// Unknown names are ignored by the stores rather than rejected.
func (d Descriptor) SortColumn(name string) (string, bool) {
	for _, col := range d.Sortable {
		if col == name {
			return col, true
		}
	}
	return "", false
}
