package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

func TestInit_SeedsOnceAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	needsAdmin, err := f.bootstrap.NeedsAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, needsAdmin)

	_, err = f.bootstrap.Init(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	result, err := f.bootstrap.Init(ctx, adminPassword)
	require.NoError(t, err)
	assert.True(t, result.AdminCreated)
	assert.Equal(t, len(DefaultDisciplines)+len(DefaultGoalAreas), result.LookupsAdded)

	admin := findUser(t, f, DefaultAdminUsername)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, domain.ChildLinkAll, admin.ChildLink)
	assert.NoError(t, f.hasher.Verify(admin.PasswordHash, adminPassword))

	needsAdmin, err = f.bootstrap.NeedsAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, needsAdmin)

	result, err = f.bootstrap.Init(ctx, "")
	require.NoError(t, err)
	assert.False(t, result.AdminCreated)
	assert.Zero(t, result.LookupsAdded)

	goals, err := f.registry.ListNames(ctx, domain.TableGoalAreas)
	require.NoError(t, err)
	assert.Equal(t, DefaultGoalAreas, goals)
}

const rosterYAML = `
lookups:
  disciplines: [OT, PT]
  goal_areas: [Gross Motor]
users:
  - username: mom
    password: mom-pass
    role: parent
    child_link: Ava
  - username: ot2
    password: ot-pass
    role: staff
children:
  - name: Ava
    parent: mom
    date_of_birth: "2021-03-04"
  - name: Mia
`

func TestImportRoster(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	result, err := f.bootstrap.ImportRoster(ctx, adminSession(), strings.NewReader(rosterYAML))
	require.NoError(t, err)

	assert.Equal(t, 2, result.UsersAdded)
	assert.Equal(t, 1, result.ChildrenAdded)
	assert.Equal(t, 2, result.LookupsAdded)
	assert.Equal(t, []string{"child Mia"}, result.Skipped)

	mom := findUser(t, f, "mom")
	assert.Equal(t, "Ava", mom.ChildLink)

	children, err := f.store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	ava, ok := children.Find("child_name", "Ava")
	require.True(t, ok)
	assert.Equal(t, "mom", ava["parent_username"])
	assert.Equal(t, "2021-03-04", ava["date_of_birth"])

	again, err := f.bootstrap.ImportRoster(ctx, adminSession(), strings.NewReader(rosterYAML))
	require.NoError(t, err)
	assert.Zero(t, again.UsersAdded+again.ChildrenAdded+again.LookupsAdded)
	assert.ElementsMatch(t, []string{"user mom", "user ot2", "child Ava", "child Mia"}, again.Skipped)
}

func TestImportRoster_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	_, err := f.bootstrap.ImportRoster(ctx, staffSession(), strings.NewReader(rosterYAML))
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.bootstrap.ImportRoster(ctx, adminSession(), strings.NewReader("users:\n  - nickname: x\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.bootstrap.ImportRoster(ctx, adminSession(), strings.NewReader("children:\n  - name: Bo\n    date_of_birth: someday\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportRoster_ChildParentMustExist(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	_, err := f.bootstrap.ImportRoster(ctx, adminSession(), strings.NewReader("children:\n  - name: Zoe\n    parent: ghost\n"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Zoe")
	assert.Contains(t, err.Error(), "ghost")

	children, err := f.store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	zoe, ok := children.Find("child_name", "Zoe")
	require.True(t, ok)
	assert.Empty(t, zoe["parent_username"])
}
