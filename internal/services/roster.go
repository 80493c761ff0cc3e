package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// RosterService manages user accounts and child profiles
type RosterService struct {
	hasher  ports.PasswordHasher
	records *RecordService
	tables  ports.TableStore
}

// NewRosterService creates a new RosterService
func NewRosterService(tables ports.TableStore, records *RecordService, hasher ports.PasswordHasher) *RosterService {
	return &RosterService{
		hasher:  hasher,
		records: records,
		tables:  tables,
	}
}

// resolveChildLink returns the child link stored for a user with role.
// Parents must name an existing child; everyone else is linked to All.
func (s *RosterService) resolveChildLink(ctx context.Context, role domain.Role, link string) (string, error) {
	if role != domain.RoleParent {
		return domain.ChildLinkAll, nil
	}

	link = strings.TrimSpace(link)
	if link == "" || link == domain.ChildLinkAll {
		return "", fmt.Errorf("%w: a parent account must be linked to a child", domain.ErrInvalidInput)
	}

	children, err := s.tables.GetTable(ctx, domain.TableChildren)
	if err != nil {
		return "", fmt.Errorf("failed to load children: %w", err)
	}
	if _, ok := children.Find("child_name", link); !ok {
		return "", fmt.Errorf("%w: child %q does not exist", domain.ErrInvalidInput, link)
	}
	return link, nil
}

// getUser returns the users row for username
func (s *RosterService) getUser(ctx context.Context, username string) (domain.User, bool, error) {
	users, err := s.tables.GetTable(ctx, domain.TableUsers)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to load users: %w", err)
	}
	row, ok := users.Find("username", username)
	if !ok {
		return domain.User{}, false, nil
	}
	return domain.UserFromRecord(row), true, nil
}

// CreateUser adds an account with a hashed password
func (s *RosterService) CreateUser(ctx context.Context, session *domain.Session, params CreateUserParams) (domain.User, error) {
	if err := session.RequireWrite(domain.TableUsers); err != nil {
		return domain.User{}, err
	}

	username := strings.TrimSpace(params.Username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRole(params.Role)
	if err != nil {
		return domain.User{}, err
	}
	childLink, err := s.resolveChildLink(ctx, role, params.ChildLink)
	if err != nil {
		return domain.User{}, err
	}

	_, exists, err := s.getUser(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrDuplicate)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{ChildLink: childLink, PasswordHash: hash, Role: role, Username: username}
	if _, err := s.tables.AppendRecord(ctx, domain.TableUsers, user.Record()); err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	logging.Logger.Info("User created", "username", username, "role", role, "by", session.Username)
	user.PasswordHash = ""
	return user, nil
}

// UpdateUser changes role, child link or password of an account.
// Empty fields keep their current value, so the stored hash survives unless a new password is given.
func (s *RosterService) UpdateUser(ctx context.Context, session *domain.Session, username string, params UpdateUserParams) (domain.User, error) {
	if err := session.RequireWrite(domain.TableUsers); err != nil {
		return domain.User{}, err
	}

	current, exists, err := s.getUser(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if !exists {
		return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	role := current.Role
	if params.Role != "" {
		if role, err = domain.ParseRole(params.Role); err != nil {
			return domain.User{}, err
		}
	}
	// A password-only change keeps the stored link, even a parent's reset to All
	childLink := current.ChildLink
	if params.Role != "" || params.ChildLink != "" {
		link := current.ChildLink
		if params.ChildLink != "" {
			link = params.ChildLink
		}
		if childLink, err = s.resolveChildLink(ctx, role, link); err != nil {
			return domain.User{}, err
		}
	}

	patch := domain.Record{"role": string(role), "child_link": childLink}
	if params.Password != "" {
		hash, err := s.hasher.Hash(params.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		patch[passwordColumn] = hash
	}

	if _, err := s.tables.UpdateWhere(ctx, domain.TableUsers, "username", username, patch); err != nil {
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	logging.Logger.Info("User updated", "username", username, "role", role,
		"password_changed", params.Password != "", "by", session.Username)
	return domain.User{ChildLink: childLink, Role: role, Username: username}, nil
}

// DeleteUser removes an account. Admins cannot remove their own account.
func (s *RosterService) DeleteUser(ctx context.Context, session *domain.Session, username string) error {
	if err := session.RequireWrite(domain.TableUsers); err != nil {
		return err
	}
	if username == session.Username {
		return fmt.Errorf("%w: cannot delete the account you are logged in with", domain.ErrInvalidInput)
	}

	n, err := s.tables.DeleteWhere(ctx, domain.TableUsers, "username", username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	logging.Logger.Info("User deleted", "username", username, "by", session.Username)
	return nil
}

// ListUsers returns every account without password hashes
func (s *RosterService) ListUsers(ctx context.Context, session *domain.Session) ([]domain.User, error) {
	if err := session.RequirePage(domain.PageUserManagement); err != nil {
		return nil, err
	}

	table, err := s.tables.GetTable(ctx, domain.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := make([]domain.User, 0, table.Len())
	for _, rec := range table.Records {
		user := domain.UserFromRecord(rec)
		user.PasswordHash = ""
		users = append(users, user)
	}
	return users, nil
}

// AddChild creates a child profile. The name must be unique and the parent account must exist.
func (s *RosterService) AddChild(ctx context.Context, session *domain.Session, child domain.Child) (domain.Child, error) {
	if err := session.RequireWrite(domain.TableChildren); err != nil {
		return domain.Child{}, err
	}

	child.Name = strings.TrimSpace(child.Name)
	child.ParentUsername = strings.TrimSpace(child.ParentUsername)
	if child.Name == "" {
		return domain.Child{}, fmt.Errorf("%w: child name is required", domain.ErrInvalidInput)
	}
	if child.Name == domain.ChildLinkAll {
		return domain.Child{}, fmt.Errorf("%w: %q is reserved", domain.ErrInvalidInput, domain.ChildLinkAll)
	}

	children, err := s.tables.GetTable(ctx, domain.TableChildren)
	if err != nil {
		return domain.Child{}, fmt.Errorf("failed to load children: %w", err)
	}
	if _, ok := children.Find("child_name", child.Name); ok {
		return domain.Child{}, fmt.Errorf("child %q: %w", child.Name, domain.ErrDuplicate)
	}

	if child.ParentUsername != "" {
		_, exists, err := s.getUser(ctx, child.ParentUsername)
		if err != nil {
			return domain.Child{}, err
		}
		if !exists {
			return domain.Child{}, fmt.Errorf("%w: parent account %q does not exist", domain.ErrInvalidInput, child.ParentUsername)
		}
	}

	rec, err := s.tables.AppendRecord(ctx, domain.TableChildren, child.Record())
	if err != nil {
		return domain.Child{}, fmt.Errorf("failed to add child: %w", err)
	}

	logging.Logger.Info("Child added", "child", child.Name, "id", rec[domain.IDColumn], "by", session.Username)
	return domain.ChildFromRecord(rec), nil
}

// DeleteChild removes a child profile and resets every child link naming it to All.
// Progress notes for the child are kept.
func (s *RosterService) DeleteChild(ctx context.Context, session *domain.Session, id int64) error {
	if err := session.RequireWrite(domain.TableChildren); err != nil {
		return err
	}

	children, err := s.tables.GetTable(ctx, domain.TableChildren)
	if err != nil {
		return fmt.Errorf("failed to load children: %w", err)
	}
	row, ok := children.FindByID(id)
	if !ok {
		return fmt.Errorf("child %d: %w", id, domain.ErrNotFound)
	}
	name := row["child_name"]

	if _, err := s.tables.DeleteRecord(ctx, domain.TableChildren, id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}

	unlinked, err := s.tables.UpdateWhere(ctx, domain.TableUsers, "child_link", name,
		domain.Record{"child_link": domain.ChildLinkAll})
	if err != nil {
		return fmt.Errorf("child %q deleted but linked accounts were not reset: %w", name, err)
	}

	logging.Logger.Info("Child deleted", "child", name, "id", id, "unlinked_users", unlinked, "by", session.Username)
	return nil
}

// ListChildren returns the child profiles visible to the session
func (s *RosterService) ListChildren(ctx context.Context, session *domain.Session) ([]domain.Child, error) {
	table, err := s.records.GetTable(ctx, session, domain.TableChildren)
	if err != nil {
		return nil, err
	}

	children := make([]domain.Child, 0, table.Len())
	for _, rec := range table.Records {
		children = append(children, domain.ChildFromRecord(rec))
	}
	return children, nil
}
