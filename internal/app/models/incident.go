package models

import "time"

// Incident types a school can report against a student.
const (
	IncidentPoorBehaviour = "Poor Behaviour"
	IncidentInjury        = "Injury"
)

// IncidentTypes lists the accepted incident_type values.
var IncidentTypes = []string{IncidentPoorBehaviour, IncidentInjury}

// Incident is a reported event involving a student.
type Incident struct {
	Base
	IncidentType     string    `db:"incident_type" json:"incident_type" binding:"required,oneof='Poor Behaviour' 'Injury'"`
	ReportedDatetime time.Time `db:"reported_datetime" json:"reported_datetime" binding:"required"`
	StudentID        int64     `db:"student_id" json:"student_id" binding:"required"`
}

func (i *Incident) Fields() ([]string, []any) {
	return []string{"incident_type", "reported_datetime", "student_id"},
		[]any{i.IncidentType, i.ReportedDatetime, i.StudentID}
}

var IncidentDescriptor = Descriptor{
	Name:     "incident",
	Path:     "/incidents",
	Table:    "incidents",
	Sortable: []string{"id", "incident_type", "reported_datetime", "student_id", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "student_id", Table: "students", Entity: "student"},
	},
}
