package seed

import (
	"context"

	"github.com/tmorrow/schoolmock/internal/app/repositories"
)

// LoadMemory writes a dataset into the in-memory backend, replacing
// whatever it held. The backend assigns ids in insertion order, so they
// match the plan indices, but the loader still remaps through the returned
// ids the same way the PostgreSQL loader does.
func LoadMemory(ctx context.Context, database *repositories.MemoryDB, ds *Dataset) error {
	if err := database.Reset(ctx); err != nil {
		return err
	}

	geoIDs := make([]int64, len(ds.Geographies))
	for i, geo := range ds.Geographies {
		rec := *geo
		geoIDs[i] = database.Insert("geography", &rec)
	}

	schoolIDs := make([]int64, len(ds.Schools))
	for i, school := range ds.Schools {
		rec := *school
		rec.GeographyID = geoIDs[school.GeographyID-1]
		schoolIDs[i] = database.Insert("schools", &rec)
	}

	studentIDs := make([]int64, len(ds.Students))
	for i, student := range ds.Students {
		rec := *student
		studentIDs[i] = database.Insert("students", &rec)
	}

	yearIDs := make([]int64, len(ds.ScholasticYears))
	for i, year := range ds.ScholasticYears {
		rec := *year
		yearIDs[i] = database.Insert("scholastic_year", &rec)
	}

	classIDs := make([]int64, len(ds.Classes))
	for i, class := range ds.Classes {
		rec := *class
		rec.ScholasticYearID = yearIDs[class.ScholasticYearID-1]
		classIDs[i] = database.Insert("classes", &rec)
	}

	enrolmentIDs := make([]int64, len(ds.Enrolments))
	for i, enrolment := range ds.Enrolments {
		rec := *enrolment
		rec.StudentID = studentIDs[enrolment.StudentID-1]
		rec.SchoolID = schoolIDs[enrolment.SchoolID-1]
		enrolmentIDs[i] = database.Insert("enrolments", &rec)
	}

	for _, ce := range ds.ClassEnrolments {
		rec := *ce
		rec.EnrolmentID = enrolmentIDs[ce.EnrolmentID-1]
		rec.ClassID = classIDs[ce.ClassID-1]
		database.Insert("class_enrolments", &rec)
	}

	for _, attendance := range ds.Attendances {
		rec := *attendance
		rec.StudentID = studentIDs[attendance.StudentID-1]
		rec.ClassID = classIDs[attendance.ClassID-1]
		database.Insert("attendances", &rec)
	}

	for _, incident := range ds.Incidents {
		rec := *incident
		rec.StudentID = studentIDs[incident.StudentID-1]
		database.Insert("incidents", &rec)
	}

	return nil
}
