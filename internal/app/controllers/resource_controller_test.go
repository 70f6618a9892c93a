package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/app/repositories"
	"github.com/tmorrow/schoolmock/internal/app/routes"
	"github.com/tmorrow/schoolmock/internal/bootstrap"
	"github.com/tmorrow/schoolmock/internal/seed"
)

type envelope struct {
	Items []json.RawMessage `json:"items"`
	Total int64             `json:"total"`
	Next  *string           `json:"next"`
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestRouter wires the full handler stack against the in-memory backend
// and loads the generated dataset into it.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := &bootstrap.Storage{Memory: repositories.NewMemoryDB()}
	require.NoError(t, seed.LoadMemory(context.Background(), storage.Memory, seed.NewGenerator(1).Build()))

	router := gin.New()
	routes.SetupRoutes(router, bootstrap.BuildDependencies(storage, zerolog.Nop()))
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func listPage(t *testing.T, router *gin.Engine, path string) envelope {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestListEnvelope(t *testing.T) {
	router := newTestRouter(t)

	page := listPage(t, router, "/students?limit=30")
	assert.Equal(t, int64(100), page.Total)
	assert.Len(t, page.Items, 30)
	require.NotNil(t, page.Next)
	assert.Equal(t, "/students/?limit=30&offset=30", *page.Next)

	last := listPage(t, router, "/students?limit=30&offset=90")
	assert.Len(t, last.Items, 10)
	assert.Nil(t, last.Next)
}

func TestListNextLinkWalk(t *testing.T) {
	router := newTestRouter(t)

	seen := 0
	page := listPage(t, router, "/incidents?limit=40")
	for {
		seen += len(page.Items)
		if page.Next == nil {
			break
		}
		u, err := url.Parse(*page.Next)
		require.NoError(t, err)
		page = listPage(t, router, "/incidents?"+u.RawQuery)
	}
	assert.Equal(t, page.Total, int64(seen), "walking next links visits every record once")
}

func TestListSorting(t *testing.T) {
	router := newTestRouter(t)

	page := listPage(t, router, "/geographies?sort=region&limit=1")
	var geo models.Geography
	require.NoError(t, json.Unmarshal(page.Items[0], &geo))
	assert.Equal(t, "Crownlands", geo.Region)

	page = listPage(t, router, "/geographies?sort=region&order=desc&limit=1")
	require.NoError(t, json.Unmarshal(page.Items[0], &geo))
	assert.Equal(t, "The Reach", geo.Region)

	// Unknown sort columns are ignored rather than rejected.
	page = listPage(t, router, "/geographies?sort=bogus&limit=1")
	require.NoError(t, json.Unmarshal(page.Items[0], &geo))
	assert.Equal(t, "King's Landing", geo.City)
}

func TestListUpdatedAfter(t *testing.T) {
	router := newTestRouter(t)

	page := listPage(t, router, "/students?updated_after=2100-01-01")
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	page = listPage(t, router, "/students?updated_after=2000-01-01&limit=5")
	assert.Equal(t, int64(100), page.Total)
}

func TestSeededDataset(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, int64(5), listPage(t, router, "/geographies").Total)
	assert.Equal(t, int64(3), listPage(t, router, "/schools").Total)
	assert.Equal(t, int64(13), listPage(t, router, "/scholastic-years").Total)
	assert.Equal(t, int64(39), listPage(t, router, "/classes").Total)
	assert.Equal(t, int64(100), listPage(t, router, "/enrolments").Total)
	assert.Equal(t, int64(1000), listPage(t, router, "/attendances").Total)

	incidents := listPage(t, router, "/incidents").Total
	assert.GreaterOrEqual(t, incidents, int64(50))
	assert.LessOrEqual(t, incidents, int64(150))

	w := doRequest(t, router, http.MethodGet, "/geographies/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var geo models.Geography
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &geo))
	assert.Equal(t, "Sunspear", geo.City)
	assert.Equal(t, "Dorne", geo.Region)
}

func TestCreateReadUpdateDelete(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/geographies", gin.H{"city": "Braavos", "region": "Essos"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Geography
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(6), created.ID)
	assert.True(t, created.RecentlyCreated)
	assert.False(t, created.CreatedAt.IsZero())

	w = doRequest(t, router, http.MethodGet, "/geographies/6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPut, "/geographies/6", gin.H{"city": "Braavos", "region": "Free Cities"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Geography
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Free Cities", updated.Region)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "update bumps updated_at")

	w = doRequest(t, router, http.MethodGet, "/geographies/6", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Geography
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.True(t, fetched.UpdatedAt.After(fetched.CreatedAt), "fetched record shows the later updated_at")

	w = doRequest(t, router, http.MethodDelete, "/geographies/6", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted models.Geography
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, "Braavos", deleted.City)

	w = doRequest(t, router, http.MethodGet, "/geographies/6", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWriteValidation(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/students", gin.H{"first_name": "Arya"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "VAL_001", body.Error.Code)
	})

	t.Run("rejected enum value", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/incidents", gin.H{
			"incident_type":     "Heroism",
			"reported_datetime": "2024-01-01T00:00:00Z",
			"student_id":        1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("dangling foreign key", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/schools", gin.H{"name": "Ghost School", "geography_id": 999})
		require.Equal(t, http.StatusBadRequest, w.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Error.Message, "geography_id")
	})

	t.Run("enrolment ending before it starts", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/enrolments", gin.H{
			"student_id": 1,
			"school_id":  1,
			"start_date": "2024-05-01",
			"end_date":   "2024-04-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("garbage id", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/students/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteConflict(t *testing.T) {
	router := newTestRouter(t)

	// Every seeded geography with a school is pinned by it.
	w := doRequest(t, router, http.MethodDelete, "/geographies/1", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RES_003", body.Error.Code)

	// Students are referenced by enrolments, attendances and incidents.
	w = doRequest(t, router, http.MethodDelete, "/students/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReadOnlyEntities(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/scholastic-years", gin.H{"year": "13"})
	assert.Equal(t, http.StatusNotFound, w.Code, "scholastic years accept no writes")

	w = doRequest(t, router, http.MethodDelete, "/class-enrolments/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "class enrolments accept no writes")

	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/scholastic-years/1", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/class-enrolments/1", nil).Code)
}

func TestReset(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "State reset successfully"}`, w.Body.String())

	// A reset empties every collection; it does not reseed.
	assert.Zero(t, listPage(t, router, "/students").Total)
	assert.Zero(t, listPage(t, router, "/geographies").Total)

	// Writes work against the empty state.
	created := doRequest(t, router, http.MethodPost, "/geographies", gin.H{"city": "Meereen", "region": "Slaver's Bay"})
	require.Equal(t, http.StatusCreated, created.Code)
	var geo models.Geography
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &geo))
	assert.Equal(t, int64(1), geo.ID)
}
