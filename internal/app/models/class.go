package models

// Subjects taught across all scholastic years.
var Subjects = []string{"English", "Maths", "Science"}

// Class is one (subject, scholastic year) combination, named
// "<subject> <year>". The pair is unique per year.
type Class struct {
	Base
	Subject          string `db:"subject" json:"subject" binding:"required,oneof=English Maths Science"`
	Name             string `db:"name" json:"name" binding:"required"`
	ScholasticYearID int64  `db:"scholastic_year_id" json:"scholastic_year_id" binding:"required"`
}

func (c *Class) Fields() ([]string, []any) {
	return []string{"subject", "name", "scholastic_year_id"},
		[]any{c.Subject, c.Name, c.ScholasticYearID}
}

var ClassDescriptor = Descriptor{
	Name:     "class",
	Path:     "/classes",
	Table:    "classes",
	Sortable: []string{"id", "subject", "name", "scholastic_year_id", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "scholastic_year_id", Table: "scholastic_year", Entity: "scholastic year"},
	},
	Dependents: []Dependent{
		{Table: "class_enrolments", Column: "class_id"},
		{Table: "attendances", Column: "class_id"},
	},
}
