package models

// Socio-economic status levels. The level drives the simulated attendance
// and incident rates in the seed generator.
const (
	SESHigh   = "High"
	SESMedium = "Medium"
	SESLow    = "Low"
)

// SESLevels lists the accepted socio_economic_status values.
var SESLevels = []string{SESHigh, SESMedium, SESLow}

// Student is a pupil; enrolments, attendances and incidents reference it.
type Student struct {
	Base
	FirstName           string `db:"first_name" json:"first_name" binding:"required"`
	LastName            string `db:"last_name" json:"last_name" binding:"required"`
	SocioEconomicStatus string `db:"socio_economic_status" json:"socio_economic_status" binding:"required,oneof=High Medium Low"`
}

func (s *Student) Fields() ([]string, []any) {
	return []string{"first_name", "last_name", "socio_economic_status"},
		[]any{s.FirstName, s.LastName, s.SocioEconomicStatus}
}

var StudentDescriptor = Descriptor{
	Name:     "student",
	Path:     "/students",
	Table:    "students",
	Sortable: []string{"id", "first_name", "last_name", "socio_economic_status", "created_at", "updated_at"},
	Dependents: []Dependent{
		{Table: "enrolments", Column: "student_id"},
		{Table: "attendances", Column: "student_id"},
		{Table: "incidents", Column: "student_id"},
	},
}
