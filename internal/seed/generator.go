package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/tmorrow/schoolmock/internal/app/models"
)

const (
	studentCount            = 100
	attendancesPerEnrolment = 10
	incidentDraws           = 50
)

// geographyPlan and schoolPlan are the fixed reference rows every dataset
// starts from. Schools point at geographies by plan index.
var geographyPlan = []models.Geography{
	{City: "King's Landing", Region: "Crownlands"},
	{City: "Winterfell", Region: "The North"},
	{City: "Highgarden", Region: "The Reach"},
	{City: "Sunspear", Region: "Dorne"},
	{City: "Pyke", Region: "Iron Islands"},
}

var schoolPlan = []models.School{
	{Name: "King's Landing Elementary School", GeographyID: 1},
	{Name: "Winterfell High School", GeographyID: 2},
	{Name: "Highgarden Comprehensive School", GeographyID: 3},
}

// Dataset is one generated batch of records, ready for a loader. Foreign
// keys hold 1-based indices into the referenced slice; loaders remap them
// to the ids the store assigns.
type Dataset struct {
	Geographies     []*models.Geography
	Schools         []*models.School
	Students        []*models.Student
	ScholasticYears []*models.ScholasticYear
	Classes         []*models.Class
	Enrolments      []*models.Enrolment
	ClassEnrolments []*models.ClassEnrolment
	Attendances     []*models.Attendance
	Incidents       []*models.Incident
}

// Generator produces synthetic school data. The same seed always produces
// the same dataset.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewGenerator creates a generator for the given random seed.
func NewGenerator(randomSeed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(uint64(randomSeed)),
		now:   time.Now().UTC(),
	}
}

// Build generates a full dataset. Generation is pure: nothing touches a
// store until a loader takes the result.
func (g *Generator) Build() *Dataset {
	ds := &Dataset{}
	g.buildGeographies(ds)
	g.buildSchools(ds)
	g.buildStudents(ds)
	g.buildYearsAndClasses(ds)
	g.buildEnrolments(ds)
	g.buildAttendances(ds)
	g.buildIncidents(ds)
	return ds
}

// buildGeographies emits the fixed city/region rows. Their created_at is
// scattered over the past year so recency flags and updated_after filters
// have something to bite on out of the box.
func (g *Generator) buildGeographies(ds *Dataset) {
	for _, plan := range geographyPlan {
		geo := plan
		geo.CreatedAt = g.randomPastInstant()
		geo.UpdatedAt = g.now
		ds.Geographies = append(ds.Geographies, &geo)
	}
}

func (g *Generator) buildSchools(ds *Dataset) {
	for _, plan := range schoolPlan {
		school := plan
		school.Stamp(g.now)
		ds.Schools = append(ds.Schools, &school)
	}
}

func (g *Generator) buildStudents(ds *Dataset) {
	for i := 0; i < studentCount; i++ {
		student := &models.Student{
			FirstName:           g.faker.FirstName(),
			LastName:            g.faker.LastName(),
			SocioEconomicStatus: g.faker.RandomString(models.SESLevels),
		}
		student.Stamp(g.now)
		ds.Students = append(ds.Students, student)
	}
}

// buildYearsAndClasses emits one scholastic year per label and the three
// subject classes of each year, year-major, so the class of (year index i,
// subject index j) sits at plan index i*3+j+1.
func (g *Generator) buildYearsAndClasses(ds *Dataset) {
	for i, label := range models.YearLabels {
		year := &models.ScholasticYear{Year: label}
		year.Stamp(g.now)
		ds.ScholasticYears = append(ds.ScholasticYears, year)

		for _, subject := range models.Subjects {
			class := &models.Class{
				Subject:          subject,
				Name:             fmt.Sprintf("%s %s", subject, label),
				ScholasticYearID: int64(i + 1),
			}
			class.Stamp(g.now)
			ds.Classes = append(ds.Classes, class)
		}
	}
}

// buildEnrolments emits one enrolment per student plus the class enrolments
// that follow from it: for each year a student has been enrolled, the three
// subject classes of that year level.
func (g *Generator) buildEnrolments(ds *Dataset) {
	for studentIdx := range ds.Students {
		start := models.NewDate(g.faker.DateRange(g.now.AddDate(-6, 0, 0), g.now.AddDate(-1, 0, 0)))

		// Roughly one in five enrolments has already ended, some time in
		// the last year.
		var end *models.Date
		if g.faker.Float64Range(0, 1) > 0.8 {
			closed := models.NewDate(g.faker.DateRange(g.now.AddDate(-1, 0, 0), g.now))
			end = &closed
		}

		enrolment := &models.Enrolment{
			StudentID: int64(studentIdx + 1),
			SchoolID:  int64(g.faker.Number(1, len(schoolPlan))),
			StartDate: start,
			EndDate:   end,
		}
		enrolment.Stamp(g.now)
		ds.Enrolments = append(ds.Enrolments, enrolment)

		lastYear := g.now.Year()
		if end != nil {
			lastYear = end.Year()
		}
		yearsEnrolled := lastYear - start.Year() + 1

		for i := 0; i < yearsEnrolled && i < len(models.YearLabels); i++ {
			for j := range models.Subjects {
				ce := &models.ClassEnrolment{
					EnrolmentID:  int64(len(ds.Enrolments)),
					ClassID:      int64(i*len(models.Subjects) + j + 1),
					CalendarYear: start.Year() + i - 1,
				}
				ce.Stamp(g.now)
				ds.ClassEnrolments = append(ds.ClassEnrolments, ce)
			}
		}
	}
}

// buildAttendances emits a fixed number of attendance records per
// enrolment, dated inside the enrolment period, against a random class.
// The socio-economic status of the student drives the presence rate.
func (g *Generator) buildAttendances(ds *Dataset) {
	for _, enrolment := range ds.Enrolments {
		student := ds.Students[enrolment.StudentID-1]
		periodEnd := g.now
		if enrolment.EndDate != nil {
			periodEnd = enrolment.EndDate.Time
		}

		for i := 0; i < attendancesPerEnrolment; i++ {
			attendance := &models.Attendance{
				StudentID:      enrolment.StudentID,
				ClassID:        int64(g.faker.Number(1, len(ds.Classes))),
				Present:        g.present(student.SocioEconomicStatus),
				AttendanceDate: models.NewDate(g.faker.DateRange(enrolment.StartDate.Time, periodEnd)),
			}
			attendance.Stamp(g.now)
			ds.Attendances = append(ds.Attendances, attendance)
		}
	}
}

// present simulates one attendance roll for the given status band.
func (g *Generator) present(status string) bool {
	switch status {
	case models.SESLow:
		return g.faker.Float64Range(0, 1) < 0.2
	case models.SESMedium:
		return g.faker.Float64Range(0, 1) < 0.1
	default:
		return g.faker.Bool()
	}
}

// buildIncidents runs a fixed number of draws; each draw picks a student
// and reports 1-3 incidents on one date depending on the student's
// socio-economic status, so the total lands between 50 and 150.
func (g *Generator) buildIncidents(ds *Dataset) {
	for i := 0; i < incidentDraws; i++ {
		reported := models.NewDate(g.faker.DateRange(g.now.AddDate(-6, 0, 0), g.now))
		studentIdx := g.faker.Number(1, len(ds.Students))
		student := ds.Students[studentIdx-1]

		multiplier := 1
		switch student.SocioEconomicStatus {
		case models.SESLow:
			multiplier = 3
		case models.SESMedium:
			multiplier = 2
		}

		for k := 0; k < multiplier; k++ {
			incident := &models.Incident{
				IncidentType:     g.faker.RandomString(models.IncidentTypes),
				ReportedDatetime: reported.Time,
				StudentID:        int64(studentIdx),
			}
			incident.Stamp(g.now)
			ds.Incidents = append(ds.Incidents, incident)
		}
	}
}

// randomPastInstant returns a moment between 1 and 365 days ago.
func (g *Generator) randomPastInstant() time.Time {
	return g.now.AddDate(0, 0, -g.faker.Number(1, 365))
}
