package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tilpconnect/tilp/internal/adapters/csvstore"
	"github.com/tilpconnect/tilp/internal/crypto"
	"github.com/tilpconnect/tilp/internal/domain"
)

const adminPassword = "admin-pass"

type fixture struct {
	bootstrap *BootstrapService
	dashboard *DashboardService
	hasher    *crypto.PasswordHasher
	lookups   *LookupService
	records   *RecordService
	registry  *csvstore.Registry
	roster    *RosterService
	store     *csvstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := csvstore.NewStore(t.TempDir(), false)
	require.NoError(t, err)

	f := &fixture{
		hasher:   crypto.NewPasswordHasher(bcrypt.MinCost),
		registry: csvstore.NewRegistry(store),
		store:    store,
	}
	f.records = NewRecordService(store, f.registry)
	f.roster = NewRosterService(store, f.records, f.hasher)
	f.lookups = NewLookupService(f.registry)
	f.dashboard = NewDashboardService(f.records)
	f.bootstrap = NewBootstrapService(store, f.registry, f.roster, f.hasher)
	return f
}

// newSeededFixture has adminuser, staff1, parent1 linked to Mia, and children Mia and Leo
func newSeededFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.bootstrap.Init(ctx, adminPassword)
	require.NoError(t, err)

	admin := testSession(domain.RoleAdmin, domain.ChildLinkAll, "adminuser")
	_, err = f.roster.AddChild(ctx, admin, domain.Child{Name: "Mia"})
	require.NoError(t, err)
	_, err = f.roster.AddChild(ctx, admin, domain.Child{Name: "Leo"})
	require.NoError(t, err)
	_, err = f.roster.CreateUser(ctx, admin, CreateUserParams{Username: "staff1", Password: "staff-pass", Role: "staff"})
	require.NoError(t, err)
	_, err = f.roster.CreateUser(ctx, admin, CreateUserParams{Username: "parent1", Password: "parent-pass", Role: "parent", ChildLink: "Mia"})
	require.NoError(t, err)
	return f
}

func testSession(role domain.Role, childLink, username string) *domain.Session {
	now := time.Now()
	return domain.NewSession("test-"+username, domain.User{Username: username, Role: role, ChildLink: childLink}, now, now.Add(time.Hour))
}

func adminSession() *domain.Session {
	return testSession(domain.RoleAdmin, domain.ChildLinkAll, "adminuser")
}

func staffSession() *domain.Session {
	return testSession(domain.RoleStaff, domain.ChildLinkAll, "staff1")
}

func parentSession() *domain.Session {
	return testSession(domain.RoleParent, "Mia", "parent1")
}

func progress(child, day, discipline string) domain.ProgressEntry {
	d, _ := time.Parse(domain.DateLayout, day)
	return domain.ProgressEntry{
		ChildName:  child,
		Date:       domain.NewDate(d),
		Discipline: discipline,
		GoalArea:   "Regulation",
		Status:     domain.StatusWorkingTowards,
	}
}
