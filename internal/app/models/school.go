package models

// School belongs to a geography and is referenced by enrolments.
type School struct {
	Base
	Name        string `db:"name" json:"name" binding:"required"`
	GeographyID int64  `db:"geography_id" json:"geography_id" binding:"required"`
}

func (s *School) Fields() ([]string, []any) {
	return []string{"name", "geography_id"}, []any{s.Name, s.GeographyID}
}

var SchoolDescriptor = Descriptor{
	Name:     "school",
	Path:     "/schools",
	Table:    "schools",
	Sortable: []string{"id", "name", "geography_id", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "geography_id", Table: "geography", Entity: "geography"},
	},
	Dependents: []Dependent{
		{Table: "enrolments", Column: "school_id"},
	},
}
