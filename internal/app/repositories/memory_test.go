package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/pkg/apperrors"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

func newGeographyStore(db *MemoryDB) *MemoryStore[models.Geography, *models.Geography] {
	return NewMemoryStore[models.Geography](db, models.GeographyDescriptor)
}

func newSchoolStore(db *MemoryDB) *MemoryStore[models.School, *models.School] {
	return NewMemoryStore[models.School](db, models.SchoolDescriptor)
}

func TestMemoryStoreCreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := newGeographyStore(NewMemoryDB())

	geo := &models.Geography{City: "Oldtown", Region: "The Reach"}
	require.NoError(t, store.Create(ctx, geo))

	assert.Equal(t, int64(1), geo.ID)
	assert.False(t, geo.CreatedAt.IsZero())
	assert.Equal(t, geo.CreatedAt, geo.UpdatedAt)
	assert.True(t, geo.RecentlyCreated)

	second := &models.Geography{City: "Lannisport", Region: "The Westerlands"}
	require.NoError(t, store.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestMemoryStoreGetByID(t *testing.T) {
	ctx := context.Background()
	store := newGeographyStore(NewMemoryDB())

	geo := &models.Geography{City: "Oldtown", Region: "The Reach"}
	require.NoError(t, store.Create(ctx, geo))

	got, err := store.GetByID(ctx, geo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oldtown", got.City)

	// Returned records never alias stored rows.
	got.City = "Mutated"
	again, err := store.GetByID(ctx, geo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oldtown", again.City)

	_, err = store.GetByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := newGeographyStore(NewMemoryDB())

	geo := &models.Geography{City: "Oldtown", Region: "The Reach"}
	require.NoError(t, store.Create(ctx, geo))
	created := geo.CreatedAt

	update := &models.Geography{City: "Oldtown", Region: "The South"}
	update.ID = geo.ID
	require.NoError(t, store.Update(ctx, update))

	assert.Equal(t, created, update.CreatedAt, "created_at survives updates")
	assert.True(t, update.UpdatedAt.After(created), "update bumps updated_at past created_at")

	got, err := store.GetByID(ctx, geo.ID)
	require.NoError(t, err)
	assert.Equal(t, "The South", got.Region)

	missing := &models.Geography{City: "Nowhere", Region: "Nowhere"}
	missing.ID = 99
	assert.ErrorIs(t, store.Update(ctx, missing), apperrors.ErrResourceNotFound)
}

func TestMemoryStoreCreateChecksForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	schools := newSchoolStore(db)

	err := schools.Create(ctx, &models.School{Name: "Ghost School", GeographyID: 42})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	geo := &models.Geography{City: "Oldtown", Region: "The Reach"}
	require.NoError(t, newGeographyStore(db).Create(ctx, geo))
	assert.NoError(t, schools.Create(ctx, &models.School{Name: "Citadel School", GeographyID: geo.ID}))
}

func TestMemoryStoreDeleteGuardsDependents(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	geographies := newGeographyStore(db)
	schools := newSchoolStore(db)

	geo := &models.Geography{City: "Oldtown", Region: "The Reach"}
	require.NoError(t, geographies.Create(ctx, geo))
	school := &models.School{Name: "Citadel School", GeographyID: geo.ID}
	require.NoError(t, schools.Create(ctx, school))

	_, err := geographies.Delete(ctx, geo.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	deleted, err := schools.Delete(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "Citadel School", deleted.Name)

	deletedGeo, err := geographies.Delete(ctx, geo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oldtown", deletedGeo.City)

	_, err = geographies.Delete(ctx, geo.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := newGeographyStore(NewMemoryDB())

	cities := []string{"Braavos", "Asshai", "Qarth", "Volantis", "Pentos"}
	for _, city := range cities {
		require.NoError(t, store.Create(ctx, &models.Geography{City: city, Region: "Essos"}))
	}

	t.Run("insertion order by default", func(t *testing.T) {
		items, total, err := store.List(ctx, helpers.ListParams{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 5)
		assert.Equal(t, "Braavos", items[0].City)
	})

	t.Run("offset and limit slice the window", func(t *testing.T) {
		items, total, err := store.List(ctx, helpers.ListParams{Limit: 2, Offset: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 2)
		assert.Equal(t, "Volantis", items[0].City)
	})

	t.Run("sort by whitelisted column", func(t *testing.T) {
		items, _, err := store.List(ctx, helpers.ListParams{Limit: 10, Sort: "city"})
		require.NoError(t, err)
		assert.Equal(t, "Asshai", items[0].City)

		items, _, err = store.List(ctx, helpers.ListParams{Limit: 10, Sort: "city", Order: "desc"})
		require.NoError(t, err)
		assert.Equal(t, "Volantis", items[0].City)
	})

	t.Run("unknown sort column keeps natural order", func(t *testing.T) {
		items, _, err := store.List(ctx, helpers.ListParams{Limit: 10, Sort: "no_such_column"})
		require.NoError(t, err)
		assert.Equal(t, "Braavos", items[0].City)
	})

	t.Run("updated_after excludes older rows", func(t *testing.T) {
		cutoff := time.Now().UTC().Add(time.Hour)
		items, total, err := store.List(ctx, helpers.ListParams{Limit: 10, UpdatedAfter: &cutoff})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)

		past := time.Now().UTC().Add(-time.Hour)
		_, total, err = store.List(ctx, helpers.ListParams{Limit: 10, UpdatedAfter: &past})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("zero limit yields empty page with full total", func(t *testing.T) {
		items, total, err := store.List(ctx, helpers.ListParams{Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Empty(t, items)
	})
}

func TestMemoryDBReset(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	store := newGeographyStore(db)

	require.NoError(t, store.Create(ctx, &models.Geography{City: "Braavos", Region: "Essos"}))
	require.NoError(t, db.Reset(ctx))

	_, total, err := store.List(ctx, helpers.ListParams{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	// Identity restarts after a reset.
	geo := &models.Geography{City: "Qarth", Region: "Essos"}
	require.NoError(t, store.Create(ctx, geo))
	assert.Equal(t, int64(1), geo.ID)
}
