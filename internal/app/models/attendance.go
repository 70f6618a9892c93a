package models

// Attendance records whether a student was present in a class on one day.
type Attendance struct {
	Base
	StudentID      int64 `db:"student_id" json:"student_id" binding:"required"`
	ClassID        int64 `db:"class_id" json:"class_id" binding:"required"`
	Present        bool  `db:"present" json:"present"`
	AttendanceDate Date  `db:"attendance_date" json:"attendance_date" binding:"required"`
}

func (a *Attendance) Fields() ([]string, []any) {
	return []string{"student_id", "class_id", "present", "attendance_date"},
		[]any{a.StudentID, a.ClassID, a.Present, a.AttendanceDate}
}

var AttendanceDescriptor = Descriptor{
	Name:     "attendance",
	Path:     "/attendances",
	Table:    "attendances",
	Sortable: []string{"id", "student_id", "class_id", "present", "attendance_date", "created_at", "updated_at"},
	Refs: []Ref{
		{Column: "student_id", Table: "students", Entity: "student"},
		{Column: "class_id", Table: "classes", Entity: "class"},
	},
}
