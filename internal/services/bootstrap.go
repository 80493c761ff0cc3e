package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// DefaultAdminUsername is the account created by Init
const DefaultAdminUsername = "adminuser"

// DefaultDisciplines are seeded into the disciplines table
var DefaultDisciplines = []string{"OT", "SLP", "BC", "ECE", "Assistant"}

// DefaultGoalAreas are seeded into the goal_areas table
var DefaultGoalAreas = []string{"Regulation", "Communication", "Fine Motor", "Social Play"}

// BootstrapService seeds a fresh data directory and imports rosters
type BootstrapService struct {
	hasher   ports.PasswordHasher
	registry ports.LookupRegistry
	roster   *RosterService
	tables   ports.TableStore
}

// NewBootstrapService creates a new BootstrapService
func NewBootstrapService(
	tables ports.TableStore,
	registry ports.LookupRegistry,
	roster *RosterService,
	hasher ports.PasswordHasher,
) *BootstrapService {
	return &BootstrapService{
		hasher:   hasher,
		registry: registry,
		roster:   roster,
		tables:   tables,
	}
}

// seedLookups adds the missing names and returns how many were added
func (s *BootstrapService) seedLookups(ctx context.Context, table string, names []string) (int, error) {
	existing, err := s.registry.ListNames(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", table, err)
	}

	added := 0
	for _, name := range names {
		if slices.Contains(existing, name) {
			continue
		}
		if err := s.registry.AddName(ctx, table, name); err != nil {
			return added, fmt.Errorf("failed to seed %s: %w", table, err)
		}
		existing = append(existing, name)
		added++
	}
	return added, nil
}

// NeedsAdmin reports whether the users table is still empty
func (s *BootstrapService) NeedsAdmin(ctx context.Context) (bool, error) {
	users, err := s.tables.GetTable(ctx, domain.TableUsers)
	if err != nil {
		return false, fmt.Errorf("failed to load users: %w", err)
	}
	return users.Len() == 0, nil
}

// Migrate adds missing declared columns to existing table files
func (s *BootstrapService) Migrate(ctx context.Context) ([]string, error) {
	migrated, err := s.tables.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}
	if len(migrated) > 0 {
		logging.Logger.Info("Tables migrated", "tables", migrated)
	}
	return migrated, nil
}

// Init migrates existing tables, creates the admin account when no user
// exists yet and seeds the default lookups. Running it again changes nothing.
func (s *BootstrapService) Init(ctx context.Context, adminPassword string) (*InitResult, error) {
	result := &InitResult{}

	migrated, err := s.Migrate(ctx)
	if err != nil {
		return nil, err
	}
	result.Migrated = migrated

	users, err := s.tables.GetTable(ctx, domain.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if users.Len() == 0 {
		if adminPassword == "" {
			return nil, fmt.Errorf("%w: an admin password is required to initialise an empty users table", domain.ErrInvalidInput)
		}
		hash, err := s.hasher.Hash(adminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin := domain.User{
			ChildLink:    domain.ChildLinkAll,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			Username:     DefaultAdminUsername,
		}
		if _, err := s.tables.AppendRecord(ctx, domain.TableUsers, admin.Record()); err != nil {
			return nil, fmt.Errorf("failed to create admin account: %w", err)
		}
		result.AdminCreated = true
		logging.Logger.Info("Admin account created", "username", DefaultAdminUsername)
	}

	for table, names := range map[string][]string{
		domain.TableDisciplines: DefaultDisciplines,
		domain.TableGoalAreas:   DefaultGoalAreas,
	} {
		added, err := s.seedLookups(ctx, table, names)
		if err != nil {
			return nil, err
		}
		result.LookupsAdded += added
	}

	logging.Logger.Info("Data directory initialised",
		"admin_created", result.AdminCreated,
		"lookups_added", result.LookupsAdded,
		"migrated", result.Migrated)
	return result, nil
}

// ImportRoster loads lookups, accounts and children from a YAML document.
// Entries that already exist are skipped, so an import can be repeated.
func (s *BootstrapService) ImportRoster(ctx context.Context, session *domain.Session, r io.Reader) (*ImportResult, error) {
	if err := session.RequireWrite(domain.TableUsers); err != nil {
		return nil, err
	}

	var roster RosterFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: roster file: %v", domain.ErrInvalidInput, err)
	}

	result := &ImportResult{}
	for table, names := range map[string][]string{
		domain.TableDisciplines: roster.Lookups.Disciplines,
		domain.TableGoalAreas:   roster.Lookups.GoalAreas,
	} {
		added, err := s.seedLookups(ctx, table, names)
		if err != nil {
			return result, err
		}
		result.LookupsAdded += added
	}

	// Parents link to children and children name their parent, so accounts
	// that are not parents go first, then children, then parents.
	var parents []RosterUser
	for _, u := range roster.Users {
		if u.Role == string(domain.RoleParent) {
			parents = append(parents, u)
			continue
		}
		if err := s.importUser(ctx, session, u, result); err != nil {
			return result, err
		}
	}

	pendingParent := make(map[int64]string)
	childByID := make(map[int64]string)
	for _, c := range roster.Children {
		child := domain.Child{Name: c.Name, DateOfBirth: domain.ParseDate(c.DateOfBirth)}
		if c.DateOfBirth != "" && !child.DateOfBirth.Valid {
			return result, fmt.Errorf("%w: roster child %q: %q is not a date", domain.ErrInvalidInput, c.Name, c.DateOfBirth)
		}
		added, err := s.roster.AddChild(ctx, session, child)
		if errors.Is(err, domain.ErrDuplicate) {
			result.Skipped = append(result.Skipped, "child "+c.Name)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("roster child %q: %w", c.Name, err)
		}
		if c.Parent != "" {
			pendingParent[added.ID] = c.Parent
			childByID[added.ID] = added.Name
		}
		result.ChildrenAdded++
	}

	for _, u := range parents {
		if err := s.importUser(ctx, session, u, result); err != nil {
			return result, err
		}
	}

	for id, parent := range pendingParent {
		_, exists, err := s.roster.getUser(ctx, parent)
		if err != nil {
			return result, err
		}
		if !exists {
			return result, fmt.Errorf("%w: roster child %q: parent account %q does not exist",
				domain.ErrInvalidInput, childByID[id], parent)
		}
		if _, err := s.tables.UpdateRecord(ctx, domain.TableChildren, id, domain.Record{"parent_username": parent}); err != nil {
			return result, fmt.Errorf("failed to link child %d to %q: %w", id, parent, err)
		}
	}

	logging.Logger.Info("Roster imported",
		"users", result.UsersAdded,
		"children", result.ChildrenAdded,
		"lookups", result.LookupsAdded,
		"skipped", len(result.Skipped),
		"by", session.Username)
	return result, nil
}

func (s *BootstrapService) importUser(ctx context.Context, session *domain.Session, u RosterUser, result *ImportResult) error {
	_, err := s.roster.CreateUser(ctx, session, CreateUserParams{
		ChildLink: u.ChildLink,
		Password:  u.Password,
		Role:      u.Role,
		Username:  u.Username,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		result.Skipped = append(result.Skipped, "user "+u.Username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("roster user %q: %w", u.Username, err)
	}
	result.UsersAdded++
	return nil
}
