package models

import "github.com/tmorrow/schoolmock/internal/pkg/apperrors"

// Enrolment is a student's continuous membership period at one school.
// A nil end_date means the student is currently enrolled.
type Enrolment struct {
	Base
	StudentID int64 `db:"student_id" json:"student_id" binding:"required"`
	SchoolID  int64 `db:"school_id" json:"school_id" binding:"required"`
	StartDate Date  `db:"start_date" json:"start_date" binding:"required"`
	EndDate   *Date `db:"end_date" json:"end_date"`
}

func (e *Enrolment) Fields() ([]string, []any) {
	return []string{"student_id", "school_id", "start_date", "end_date"},
		[]any{e.StudentID, e.SchoolID, e.StartDate, e.EndDate}
}

// Validate enforces that a closed enrolment does not end before it starts.
func (e *Enrolment) Validate() error {
	if e.EndDate != nil && e.EndDate.Before(e.StartDate.Time) {
		return apperrors.NewValidationError("end_date must not be before start_date")
	}
	return nil
}

var EnrolmentDescriptor = Descriptor{
	Name:     "enrolment",
	Path:     "/enrolments",
	Table:    "enrolments",
	Sortable: []string{"id", "student_id", "school_id", "start_date", "end_date", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "student_id", Table: "students", Entity: "student"},
		{Column: "school_id", Table: "schools", Entity: "school"},
	},
	Dependents: []Dependent{
		{Table: "class_enrolments", Column: "enrolment_id"},
	},
}
