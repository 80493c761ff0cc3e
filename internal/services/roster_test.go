package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

func findUser(t *testing.T, f *fixture, username string) domain.User {
	t.Helper()
	users, err := f.store.GetTable(context.Background(), domain.TableUsers)
	require.NoError(t, err)
	row, ok := users.Find("username", username)
	require.True(t, ok, "user %s", username)
	return domain.UserFromRecord(row)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()

	tests := []struct {
		name    string
		params  CreateUserParams
		wantErr error
	}{
		{"duplicate username", CreateUserParams{Username: "staff1", Password: "p", Role: "staff"}, domain.ErrDuplicate},
		{"unknown role", CreateUserParams{Username: "x", Password: "p", Role: "guest"}, domain.ErrInvalidInput},
		{"empty username", CreateUserParams{Username: " ", Password: "p", Role: "staff"}, domain.ErrInvalidInput},
		{"empty password", CreateUserParams{Username: "x", Role: "staff"}, domain.ErrInvalidInput},
		{"parent without child", CreateUserParams{Username: "x", Password: "p", Role: "parent"}, domain.ErrInvalidInput},
		{"parent with unknown child", CreateUserParams{Username: "x", Password: "p", Role: "parent", ChildLink: "Zoe"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.roster.CreateUser(ctx, admin, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	user, err := f.roster.CreateUser(ctx, admin, CreateUserParams{Username: "ot1", Password: "secret", Role: "staff", ChildLink: "Mia"})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.ChildLinkAll, user.ChildLink, "staff are never linked to a single child")

	stored := findUser(t, f, "ot1")
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, f.hasher.Verify(stored.PasswordHash, "secret"))

	_, err = f.roster.CreateUser(ctx, staffSession(), CreateUserParams{Username: "y", Password: "p", Role: "staff"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdateUser_KeepsHashWithoutNewPassword(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()
	before := findUser(t, f, "parent1")

	updated, err := f.roster.UpdateUser(ctx, admin, "parent1", UpdateUserParams{ChildLink: "Leo"})
	require.NoError(t, err)
	assert.Equal(t, "Leo", updated.ChildLink)

	after := findUser(t, f, "parent1")
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, "Leo", after.ChildLink)

	_, err = f.roster.UpdateUser(ctx, admin, "parent1", UpdateUserParams{Password: "new-pass"})
	require.NoError(t, err)
	assert.NoError(t, f.hasher.Verify(findUser(t, f, "parent1").PasswordHash, "new-pass"))

	_, err = f.roster.UpdateUser(ctx, admin, "ghost", UpdateUserParams{Role: "staff"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()

	assert.ErrorIs(t, f.roster.DeleteUser(ctx, admin, "adminuser"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.roster.DeleteUser(ctx, admin, "ghost"), domain.ErrNotFound)
	require.NoError(t, f.roster.DeleteUser(ctx, admin, "staff1"))

	users, err := f.roster.ListUsers(ctx, staffSession())
	require.NoError(t, err)
	var names []string
	for _, u := range users {
		names = append(names, u.Username)
		assert.Empty(t, u.PasswordHash)
	}
	assert.Equal(t, []string{"adminuser", "parent1"}, names)

	_, err = f.roster.ListUsers(ctx, parentSession())
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestAddChild(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()

	_, err := f.roster.AddChild(ctx, admin, domain.Child{Name: "Mia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.roster.AddChild(ctx, admin, domain.Child{Name: "Ava", ParentUsername: "ghost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.roster.AddChild(ctx, admin, domain.Child{Name: domain.ChildLinkAll})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	child, err := f.roster.AddChild(ctx, admin, domain.Child{Name: " Ava ", ParentUsername: "parent1", DateOfBirth: domain.ParseDate("2020-02-29")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), child.ID)
	assert.Equal(t, "Ava", child.Name)
	assert.Equal(t, "2020-02-29", child.DateOfBirth.String())

	_, err = f.roster.AddChild(ctx, staffSession(), domain.Child{Name: "Noa"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDeleteChild_ResetsLinksAndKeepsProgress(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()
	_, err := f.roster.CreateUser(ctx, admin, CreateUserParams{Username: "parent2", Password: "p", Role: "parent", ChildLink: "Mia"})
	require.NoError(t, err)
	_, err = f.records.AddProgress(ctx, staffSession(), progress("Mia", "2024-05-01", "OT"))
	require.NoError(t, err)

	children, err := f.store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	mia, ok := children.Find("child_name", "Mia")
	require.True(t, ok)

	require.NoError(t, f.roster.DeleteChild(ctx, admin, mia.ID()))

	children, err = f.store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leo"}, childNames(children))

	assert.Equal(t, domain.ChildLinkAll, findUser(t, f, "parent1").ChildLink)
	assert.Equal(t, domain.ChildLinkAll, findUser(t, f, "parent2").ChildLink)

	progressTable, err := f.store.GetTable(ctx, domain.TableProgress)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mia"}, childNames(progressTable))

	assert.ErrorIs(t, f.roster.DeleteChild(ctx, admin, mia.ID()), domain.ErrNotFound)
}

func TestListChildren_FollowsVisibility(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	children, err := f.roster.ListChildren(ctx, parentSession())
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Mia", children[0].Name)

	children, err = f.roster.ListChildren(ctx, staffSession())
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestUpdateUser_PasswordOnlyAfterChildDeleted(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)
	admin := adminSession()

	children, err := f.store.GetTable(ctx, domain.TableChildren)
	require.NoError(t, err)
	mia, ok := children.Find("child_name", "Mia")
	require.True(t, ok)
	require.NoError(t, f.roster.DeleteChild(ctx, admin, mia.ID()))

	updated, err := f.roster.UpdateUser(ctx, admin, "parent1", UpdateUserParams{Password: "fresh-pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChildLinkAll, updated.ChildLink)

	stored := findUser(t, f, "parent1")
	assert.Equal(t, domain.ChildLinkAll, stored.ChildLink)
	assert.NoError(t, f.hasher.Verify(stored.PasswordHash, "fresh-pass"))

	_, err = f.roster.UpdateUser(ctx, admin, "parent1", UpdateUserParams{Role: "parent"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
