package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

func TestChildDashboard(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	staff := staffSession()
	days := []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05", "2024-05-06"}
	disciplines := []string{"OT", "SLP", "OT", "BC", "OT", "SLP"}
	for i, day := range days {
		_, err := f.records.AddProgress(ctx, staff, progress("Mia", day, disciplines[i]))
		require.NoError(t, err)
	}
	_, err := f.records.AddProgress(ctx, staff, progress("Leo", "2024-05-07", "ECE"))
	require.NoError(t, err)

	board, err := f.dashboard.ChildDashboard(ctx, parentSession(), "")
	require.NoError(t, err)

	assert.Equal(t, "Mia", board.ChildName)
	assert.Equal(t, 6, board.Total)
	assert.Equal(t, []DisciplineCount{
		{Count: 3, Discipline: "OT"},
		{Count: 2, Discipline: "SLP"},
		{Count: 1, Discipline: "BC"},
	}, board.Disciplines)
	require.Len(t, board.Recent, 5)
	assert.Equal(t, "2024-05-06", board.Recent[0].Date.String())
	assert.Equal(t, "2024-05-02", board.Recent[4].Date.String())
}

func TestChildDashboard_Access(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	_, err := f.dashboard.ChildDashboard(ctx, parentSession(), "Leo")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.dashboard.ChildDashboard(ctx, staffSession(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	board, err := f.dashboard.ChildDashboard(ctx, staffSession(), "Leo")
	require.NoError(t, err)
	assert.Zero(t, board.Total)
	assert.Empty(t, board.Recent)
}
