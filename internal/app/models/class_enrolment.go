package models

// ClassEnrolment links an enrolment to a class for one calendar year:
// "this student took this subject/year combination in this calendar year".
// The collection is produced by the seeder and exposed read-only.
type ClassEnrolment struct {
	Base
	EnrolmentID  int64 `db:"enrolment_id" json:"enrolment_id" binding:"required"`
	ClassID      int64 `db:"class_id" json:"class_id" binding:"required"`
	CalendarYear int   `db:"calendar_year" json:"calendar_year" binding:"required"`
}

func (ce *ClassEnrolment) Fields() ([]string, []any) {
	return []string{"enrolment_id", "class_id", "calendar_year"},
		[]any{ce.EnrolmentID, ce.ClassID, ce.CalendarYear}
}

var ClassEnrolmentDescriptor = Descriptor{
	Name:     "class enrolment",
	Path:     "/class-enrolments",
	Table:    "class_enrolments",
	Sortable: []string{"id", "enrolment_id", "class_id", "calendar_year", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "enrolment_id", Table: "enrolments", Entity: "enrolment"},
		{Column: "class_id", Table: "classes", Entity: "class"},
	},
	ReadOnly: true,
}
