package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, rawQuery string) ListParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/students/?"+rawQuery, nil)
	return ParseListParams(c)
}

func TestParseListParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := parseQuery(t, "")
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 0, p.Offset)
		assert.Equal(t, "asc", p.Order)
		assert.Empty(t, p.Sort)
		assert.Nil(t, p.UpdatedAfter)
	})

	t.Run("negative limit clamps to zero", func(t *testing.T) {
		p := parseQuery(t, "limit=-5")
		assert.Equal(t, 0, p.Limit)
	})

	t.Run("page maps to offset", func(t *testing.T) {
		p := parseQuery(t, "limit=20&page=3")
		assert.Equal(t, 40, p.Offset)
	})

	t.Run("page one is the first window", func(t *testing.T) {
		p := parseQuery(t, "page=1")
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("offset wins over page", func(t *testing.T) {
		p := parseQuery(t, "limit=10&page=5&offset=7")
		assert.Equal(t, 7, p.Offset)
	})

	t.Run("negative offset clamps to zero", func(t *testing.T) {
		p := parseQuery(t, "offset=-1")
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("order normalizes", func(t *testing.T) {
		assert.Equal(t, "desc", parseQuery(t, "order=DESC").Order)
		assert.Equal(t, "desc", parseQuery(t, "order=desc").Order)
		assert.Equal(t, "asc", parseQuery(t, "order=sideways").Order)
	})

	t.Run("updated_after accepts RFC3339", func(t *testing.T) {
		p := parseQuery(t, "updated_after=2024-05-01T10%3A30%3A00Z")
		require.NotNil(t, p.UpdatedAfter)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), p.UpdatedAfter.UTC())
	})

	t.Run("updated_after accepts bare date", func(t *testing.T) {
		p := parseQuery(t, "updated_after=2024-05-01")
		require.NotNil(t, p.UpdatedAfter)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), p.UpdatedAfter.UTC())
	})

	t.Run("unparseable updated_after is ignored", func(t *testing.T) {
		p := parseQuery(t, "updated_after=yesterday")
		assert.Nil(t, p.UpdatedAfter)
	})
}

func TestNextPageURL(t *testing.T) {
	t.Run("nil when window covers collection", func(t *testing.T) {
		assert.Nil(t, NextPageURL("/students", 10, 0, 10))
		assert.Nil(t, NextPageURL("/students", 10, 90, 100))
		assert.Nil(t, NextPageURL("/students", 10, 0, 0))
	})

	t.Run("advances by limit", func(t *testing.T) {
		next := NextPageURL("/students", 10, 0, 25)
		require.NotNil(t, next)
		assert.Equal(t, "/students/?limit=10&offset=10", *next)
	})

	t.Run("mid-collection offset", func(t *testing.T) {
		next := NextPageURL("/incidents", 25, 25, 120)
		require.NotNil(t, next)
		assert.Equal(t, "/incidents/?limit=25&offset=50", *next)
	})

	t.Run("zero limit never completes", func(t *testing.T) {
		next := NextPageURL("/students", 0, 0, 3)
		require.NotNil(t, next)
		assert.Equal(t, "/students/?limit=0&offset=0", *next)
	})
}
