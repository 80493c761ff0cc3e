package csvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), false)
	require.NoError(t, err)
	return store
}

func writeTable(t *testing.T, store *Store, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(store.tablePath(name), []byte(content), 0600))
}

func readTable(t *testing.T, store *Store, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(store.tablePath(name))
	require.NoError(t, err)
	return data
}

func TestGetTable_AbsentFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	table, err := store.GetTable(context.Background(), domain.TableProgress)

	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Columns)
}

func TestGetTable_UnknownTable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTable(context.Background(), "invoices")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendRecord_AssignsNextID(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table starts at 1", func(t *testing.T) {
		store := newTestStore(t)
		rec, err := store.AppendRecord(ctx, domain.TableSessionPlans, domain.Record{"date": "2024-05-01"})
		require.NoError(t, err)
		assert.Equal(t, "1", rec["id"])
	})

	t.Run("max existing id plus one", func(t *testing.T) {
		store := newTestStore(t)
		writeTable(t, store, domain.TableChildren,
			"id,child_name,parent_username,date_of_birth\n3,Mia,,\n7,Leo,,\n2,Ava,,\n")

		rec, err := store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Zoe"})
		require.NoError(t, err)
		assert.Equal(t, int64(8), rec.ID())
	})

	t.Run("id-less tables get no id", func(t *testing.T) {
		store := newTestStore(t)
		rec, err := store.AppendRecord(ctx, domain.TableDisciplines, domain.Record{"name": "OT"})
		require.NoError(t, err)
		_, hasID := rec["id"]
		assert.False(t, hasID)
	})
}

func TestAppendRecord_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	input := domain.Record{
		"date":       "05/01/2024",
		"child_name": "Mia",
		"discipline": "OT",
		"goal_area":  "Fine Motor",
		"status":     "Met Goal",
		"notes":      "stacked 5 blocks, then \"asked\" for more\nsecond line",
	}
	_, err := store.AppendRecord(ctx, domain.TableProgress, input)
	require.NoError(t, err)

	table, err := store.GetTable(ctx, domain.TableProgress)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	want := input.Clone()
	want["date"] = "2024-05-01"
	want["id"] = "1"
	want["media_path"] = ""
	if diff := cmp.Diff(want, table.Records[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.Schemas[domain.TableProgress].ColumnNames(), table.Columns)
}

func TestAppendRecord_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		table  string
		fields domain.Record
		want   error
	}{
		{"undeclared column", domain.TableProgress, domain.Record{"date": "2024-01-01", "child_name": "Mia", "mood": "ok"}, domain.ErrSchemaMismatch},
		{"missing required column", domain.TableProgress, domain.Record{"child_name": "Mia"}, domain.ErrSchemaMismatch},
		{"blank required column", domain.TableUsers, domain.Record{"username": " ", "password": "x", "role": "admin"}, domain.ErrSchemaMismatch},
		{"caller supplied id", domain.TableChildren, domain.Record{"id": "9", "child_name": "Mia"}, domain.ErrInvalidInput},
		{"bad date", domain.TableSessionPlans, domain.Record{"date": "someday"}, domain.ErrInvalidInput},
		{"unknown table", "invoices", domain.Record{"x": "y"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			_, err := store.AppendRecord(ctx, tt.table, tt.fields)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.table)
			assert.NoFileExists(t, store.tablePath(tt.table))
		})
	}
}

func TestUpdateDelete_MissingIDLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	writeTable(t, store, domain.TableChildren,
		"id,child_name,parent_username,date_of_birth\n1,Mia,parent1,2019-02-03\n")
	before := readTable(t, store, domain.TableChildren)

	updated, err := store.UpdateRecord(ctx, domain.TableChildren, 42, domain.Record{"child_name": "Leo"})
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := store.DeleteRecord(ctx, domain.TableChildren, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, before, readTable(t, store, domain.TableChildren))
}

func TestUpdateRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Mia"})
	require.NoError(t, err)
	_, err = store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Leo"})
	require.NoError(t, err)

	updated, err := store.UpdateRecord(ctx, domain.TableChildren, 2, domain.Record{"date_of_birth": "2020-01-09 00:00:00"})
	require.NoError(t, err)
	assert.True(t, updated)

	table, err := store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	rec, ok := table.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Leo", rec["child_name"])
	assert.Equal(t, "2020-01-09", rec["date_of_birth"])

	_, err = store.UpdateRecord(ctx, domain.TableChildren, 1, domain.Record{"id": "5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, name := range []string{"Mia", "Leo", "Ava"} {
		_, err := store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": name})
		require.NoError(t, err)
	}

	deleted, err := store.DeleteRecord(ctx, domain.TableChildren, 2)
	require.NoError(t, err)
	assert.True(t, deleted)

	table, err := store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Mia", table.Records[0]["child_name"])
	assert.Equal(t, "Ava", table.Records[1]["child_name"])

	// ids are never reused below the current max
	rec, err := store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Zoe"})
	require.NoError(t, err)
	assert.Equal(t, "4", rec["id"])
}

func TestUpdateDelete_IDLessTableUnsupported(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.UpdateRecord(ctx, domain.TableUsers, 1, domain.Record{"role": "staff"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = store.DeleteRecord(ctx, domain.TableGoalAreas, 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestUpdateWhereDeleteWhere(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	writeTable(t, store, domain.TableUsers,
		"username,password,role,child_link\nadminuser,h1,admin,All\np1,h2,parent,Mia\np2,h3,parent,Mia\ns1,h4,staff,All\n")

	n, err := store.UpdateWhere(ctx, domain.TableUsers, "child_link", "Mia", domain.Record{"child_link": domain.ChildLinkAll})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.DeleteWhere(ctx, domain.TableUsers, "username", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	table, err := store.GetTable(ctx, domain.TableUsers)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	for _, rec := range table.Records {
		assert.Equal(t, domain.ChildLinkAll, rec["child_link"])
	}

	_, err = store.DeleteWhere(ctx, domain.TableUsers, "email", "x")
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestGetTable_CoercesDates(t *testing.T) {
	store := newTestStore(t)
	writeTable(t, store, domain.TableProgress,
		"id,date,child_name,discipline,goal_area,status,notes,media_path\n"+
			"1,03/05/2024,Mia,OT,Regulation,Met Goal,,\n"+
			"2,not-a-date,Mia,OT,Regulation,Met Goal,,\n"+
			"3,2024-03-07 10:15:00,Leo,SLP,Communication,Not Observed,,\n")

	table, err := store.GetTable(context.Background(), domain.TableProgress)

	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "2024-03-05", table.Records[0]["date"])
	assert.Equal(t, "", table.Records[1]["date"])
	assert.False(t, table.Records[1].Date("date").Valid)
	assert.Equal(t, "2024-03-07", table.Records[2]["date"])
	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0], "line 3")
}

func TestGetTable_MalformedFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	corrupt := "id,child_name,parent_username,date_of_birth\n1,Mia\n2,\"Leo,,\n"
	writeTable(t, store, domain.TableChildren, corrupt)

	table, err := store.GetTable(ctx, domain.TableChildren)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageCorrupt)
	var tableErr *domain.TableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, domain.TableChildren, tableErr.Table)
	assert.Equal(t, 0, table.Len())

	_, err = store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Ava"})
	assert.ErrorIs(t, err, domain.ErrStorageCorrupt)
	assert.Equal(t, corrupt, string(readTable(t, store, domain.TableChildren)))
}

func TestGetTable_HeaderOnlyAndEmptyFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	writeTable(t, store, domain.TableGoalAreas, "")
	writeTable(t, store, domain.TableDisciplines, "name\n")

	empty, err := store.GetTable(ctx, domain.TableGoalAreas)
	require.NoError(t, err)
	assert.Empty(t, empty.Columns)

	headerOnly, err := store.GetTable(ctx, domain.TableDisciplines)
	require.NoError(t, err)
	assert.Equal(t, 0, headerOnly.Len())
	assert.Equal(t, []string{"name"}, headerOnly.Columns)
}

func TestOlderSchema_ReadsThenRequiresMigration(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	writeTable(t, store, domain.TableProgress,
		"id,date,child_name,discipline,goal_area,status,notes\n1,2024-01-02,Mia,OT,Regulation,Met Goal,calm\n")

	table, err := store.GetTable(ctx, domain.TableProgress)
	require.NoError(t, err)
	assert.Equal(t, "", table.Records[0]["media_path"])

	_, err = store.AppendRecord(ctx, domain.TableProgress, domain.Record{"date": "2024-01-03", "child_name": "Mia"})
	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "media_path")

	migrated, err := store.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.TableProgress}, migrated)

	rec, err := store.AppendRecord(ctx, domain.TableProgress, domain.Record{"date": "2024-01-03", "child_name": "Mia"})
	require.NoError(t, err)
	assert.Equal(t, "2", rec["id"])

	again, err := store.Migrate(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMigrate_UndeclaredColumns(t *testing.T) {
	store := newTestStore(t)
	writeTable(t, store, domain.TableDisciplines, "name,colour\nOT,red\n")

	_, err := store.Migrate(context.Background())

	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "colour")
}

func TestListTableFiles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.AppendRecord(ctx, domain.TableUsers, domain.Record{"username": "a", "password": "h", "role": "admin"})
	require.NoError(t, err)
	_, err = store.AppendRecord(ctx, domain.TableChildren, domain.Record{"child_name": "Mia"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.DataDir(), "notes.txt"), []byte("x"), 0600))

	files, err := store.ListTableFiles(ctx)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, domain.TableUsers, files[0].Name)
	assert.Equal(t, "users.csv", filepath.Base(files[0].Path))
	assert.Equal(t, domain.TableChildren, files[1].Name)
}

func TestAppendRecord_ConcurrentAppendsGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), true)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	ids := make(chan string, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := store.AppendRecord(ctx, domain.TableProgress, domain.Record{
				"date":       "2024-02-01",
				"child_name": fmt.Sprintf("child-%d", i),
			})
			if assert.NoError(t, err) {
				ids <- rec["id"]
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers)

	table, err := store.GetTable(ctx, domain.TableProgress)
	require.NoError(t, err)
	assert.Equal(t, writers, table.Len())
}
