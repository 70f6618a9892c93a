package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/db"
)

// truncateOrder lists every seeded table, dependents first.
var truncateOrder = []string{
	"incidents",
	"attendances",
	"class_enrolments",
	"enrolments",
	"classes",
	"scholastic_year",
	"students",
	"schools",
	"geography",
}

// LoadPostgres writes a dataset into PostgreSQL in one transaction,
// replacing whatever the tables held. Plan-index foreign keys are remapped
// to the ids the database assigns, so a partially filled id sequence never
// breaks referential integrity.
func LoadPostgres(ctx context.Context, database *db.PostgresDB, ds *Dataset) error {
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(truncateOrder, ", "))); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}

		geoIDs := make([]int64, len(ds.Geographies))
		for i, geo := range ds.Geographies {
			id, err := insertRecord(ctx, tx, "geography", geo)
			if err != nil {
				return err
			}
			geoIDs[i] = id
		}

		schoolIDs := make([]int64, len(ds.Schools))
		for i, school := range ds.Schools {
			rec := *school
			rec.GeographyID = geoIDs[school.GeographyID-1]
			id, err := insertRecord(ctx, tx, "schools", &rec)
			if err != nil {
				return err
			}
			schoolIDs[i] = id
		}

		studentIDs := make([]int64, len(ds.Students))
		for i, student := range ds.Students {
			id, err := insertRecord(ctx, tx, "students", student)
			if err != nil {
				return err
			}
			studentIDs[i] = id
		}

		yearIDs := make([]int64, len(ds.ScholasticYears))
		for i, year := range ds.ScholasticYears {
			id, err := insertRecord(ctx, tx, "scholastic_year", year)
			if err != nil {
				return err
			}
			yearIDs[i] = id
		}

		classIDs := make([]int64, len(ds.Classes))
		for i, class := range ds.Classes {
			rec := *class
			rec.ScholasticYearID = yearIDs[class.ScholasticYearID-1]
			id, err := insertRecord(ctx, tx, "classes", &rec)
			if err != nil {
				return err
			}
			classIDs[i] = id
		}

		enrolmentIDs := make([]int64, len(ds.Enrolments))
		for i, enrolment := range ds.Enrolments {
			rec := *enrolment
			rec.StudentID = studentIDs[enrolment.StudentID-1]
			rec.SchoolID = schoolIDs[enrolment.SchoolID-1]
			id, err := insertRecord(ctx, tx, "enrolments", &rec)
			if err != nil {
				return err
			}
			enrolmentIDs[i] = id
		}

		for _, ce := range ds.ClassEnrolments {
			rec := *ce
			rec.EnrolmentID = enrolmentIDs[ce.EnrolmentID-1]
			rec.ClassID = classIDs[ce.ClassID-1]
			if _, err := insertRecord(ctx, tx, "class_enrolments", &rec); err != nil {
				return err
			}
		}

		for _, attendance := range ds.Attendances {
			rec := *attendance
			rec.StudentID = studentIDs[attendance.StudentID-1]
			rec.ClassID = classIDs[attendance.ClassID-1]
			if _, err := insertRecord(ctx, tx, "attendances", &rec); err != nil {
				return err
			}
		}

		for _, incident := range ds.Incidents {
			rec := *incident
			rec.StudentID = studentIDs[incident.StudentID-1]
			if _, err := insertRecord(ctx, tx, "incidents", &rec); err != nil {
				return err
			}
		}

		return nil
	})
}

// insertRecord inserts one record preserving its generated timestamps and
// returns the assigned id.
func insertRecord(ctx context.Context, tx pgx.Tx, table string, rec models.Record) (int64, error) {
	names, values := rec.Fields()
	columns := append([]string{"created_at", "updated_at"}, names...)
	args := append([]any{rec.Meta().CreatedAt, rec.Meta().UpdatedAt}, values...)

	marks := make([]string, len(columns))
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert seed row into %s: %w", table, err)
	}
	return id, nil
}
