package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

func TestRepositoryOrderBy(t *testing.T) {
	repo := NewRepository[models.Student](nil, models.StudentDescriptor)

	t.Run("no sort falls back to id", func(t *testing.T) {
		assert.Equal(t, " ORDER BY id", repo.orderBy(helpers.ListParams{}))
	})

	t.Run("sorted listings carry an id tiebreaker", func(t *testing.T) {
		clause := repo.orderBy(helpers.ListParams{Sort: "socio_economic_status", Order: "asc"})
		assert.Equal(t, " ORDER BY socio_economic_status, id", clause)
	})

	t.Run("descending applies to the sort key only", func(t *testing.T) {
		clause := repo.orderBy(helpers.ListParams{Sort: "last_name", Order: "desc"})
		assert.Equal(t, " ORDER BY last_name DESC, id", clause)
	})

	t.Run("unknown sort column is ignored", func(t *testing.T) {
		assert.Equal(t, " ORDER BY id", repo.orderBy(helpers.ListParams{Sort: "password"}))
	})
}

func TestRepositoryColumns(t *testing.T) {
	repo := NewRepository[models.Enrolment](nil, models.EnrolmentDescriptor)
	assert.Equal(t,
		[]string{"id", "created_at", "updated_at", "student_id", "school_id", "start_date", "end_date"},
		repo.columns())
}
