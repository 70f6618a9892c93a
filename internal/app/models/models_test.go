package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorrow/schoolmock/internal/pkg/apperrors"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-17"`, string(out))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-17"`), &parsed))
	assert.Equal(t, d, parsed)

	var nullable *Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &nullable))
	assert.Nil(t, nullable)

	assert.Error(t, json.Unmarshal([]byte(`"17/05/2024"`), &parsed))
}

func TestEnrolmentValidate(t *testing.T) {
	start := NewDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	open := &Enrolment{StudentID: 1, SchoolID: 1, StartDate: start}
	assert.NoError(t, open.Validate())

	sameDay := start
	closedSameDay := &Enrolment{StudentID: 1, SchoolID: 1, StartDate: start, EndDate: &sameDay}
	assert.NoError(t, closedSameDay.Validate())

	before := start.AddDays(-1)
	inverted := &Enrolment{StudentID: 1, SchoolID: 1, StartDate: start, EndDate: &before}
	assert.ErrorIs(t, inverted.Validate(), apperrors.ErrValidationFailed)
}

func TestBaseRecencyFlags(t *testing.T) {
	now := time.Now().UTC()

	var fresh Base
	fresh.Stamp(now)
	fresh.RefreshFlags(now)
	assert.True(t, fresh.RecentlyCreated)
	assert.True(t, fresh.RecentlyUpdated)

	var stale Base
	stale.Stamp(now.Add(-8 * 24 * time.Hour))
	stale.Touch(now.Add(-time.Hour))
	stale.RefreshFlags(now)
	assert.False(t, stale.RecentlyCreated)
	assert.True(t, stale.RecentlyUpdated)
}

func TestDescriptorSortColumn(t *testing.T) {
	col, ok := StudentDescriptor.SortColumn("last_name")
	assert.True(t, ok)
	assert.Equal(t, "last_name", col)

	_, ok = StudentDescriptor.SortColumn("password")
	assert.False(t, ok)

	_, ok = StudentDescriptor.SortColumn("")
	assert.False(t, ok)
}
