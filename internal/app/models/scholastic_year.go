package models

// YearLabels are the scholastic year labels in teaching order.
var YearLabels = []string{"K", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

// ScholasticYear is a year level ("K" through "12"). The collection is fixed
// by the seeder and exposed read-only.
type ScholasticYear struct {
	Base
	Year string `db:"year" json:"year" binding:"required"`
}

func (y *ScholasticYear) Fields() ([]string, []any) {
	return []string{"year"}, []any{y.Year}
}

var ScholasticYearDescriptor = Descriptor{
	Name:     "scholastic year",
	Path:     "/scholastic-years",
	Table:    "scholastic_year",
	Sortable: []string{"id", "year", "created_at", "updated_at"},
	Dependents: []Dependent{
		{Table: "classes", Column: "scholastic_year_id"},
	},
	ReadOnly: true,
}
