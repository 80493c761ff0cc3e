package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{"2024-03-05", "2024-03-05", true},
		{"2024-03-05 14:30:00", "2024-03-05", true},
		{"2024-03-05T14:30:00Z", "2024-03-05", true},
		{"03/05/2024", "2024-03-05", true},
		{" 2024-03-05 ", "2024-03-05", true},
		{"", "", false},
		{"not a date", "", false},
		{"2024-13-40", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseDate(tt.input)
			assert.Equal(t, tt.valid, d.Valid)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, int64(7), Record{"id": "7"}.ID())
	assert.Equal(t, int64(0), Record{"id": "x"}.ID())
	assert.Equal(t, int64(0), Record{}.ID())
}

func TestEntityRecordRoundTrip(t *testing.T) {
	entry := ProgressEntry{
		ChildName:  "Mia",
		Date:       NewDate(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
		Discipline: "OT",
		GoalArea:   "Fine Motor",
		Status:     StatusMetGoal,
		Notes:      "stacked blocks",
	}

	rec := entry.Record()
	rec["id"] = "3"
	got := ProgressFromRecord(rec)

	entry.ID = 3
	assert.Equal(t, entry, got)
	assert.Equal(t, "2024-05-01", rec["date"])
}

func TestSchemas(t *testing.T) {
	for _, name := range TableNames {
		s, err := LookupSchema(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name)
	}

	assert.True(t, Schemas[TableProgress].HasID())
	assert.False(t, Schemas[TableUsers].HasID())
	assert.True(t, Schemas[TableGoalAreas].IsLookup())

	_, err := LookupSchema("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSyncReportErr(t *testing.T) {
	report := &SyncReport{Results: []FileResult{
		{File: "users.csv", Outcome: SyncUpdated},
		{File: "progress.csv", Outcome: SyncFailed, Err: ErrRemoteWriteConflict},
	}}

	err := report.Err()
	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"users.csv"}, partial.Succeeded)
	assert.ErrorIs(t, partial.Failed["progress.csv"], ErrRemoteWriteConflict)
	assert.Contains(t, err.Error(), "progress.csv")

	assert.NoError(t, (&SyncReport{}).Err())
}
