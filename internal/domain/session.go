package domain

import (
	"fmt"
	"time"
)

// SessionState is the authentication state of a session
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Session is the authenticated identity and visibility scope of one user.
// It is passed explicitly to every service call; there is no ambient session.
type Session struct {
	ChildLink string
	ExpiresAt time.Time
	ID        string
	IssuedAt  time.Time
	Role      Role
	Username  string

	childFilter   string
	authenticated bool
}

// NewSession creates an authenticated session for user.
// The child filter starts at the user's child link.
func NewSession(id string, user User, issuedAt, expiresAt time.Time) *Session {
	return &Session{
		ChildLink:     user.ChildLink,
		ExpiresAt:     expiresAt,
		ID:            id,
		IssuedAt:      issuedAt,
		Role:          user.Role,
		Username:      user.Username,
		childFilter:   defaultFilter(user.ChildLink),
		authenticated: true,
	}
}

func defaultFilter(childLink string) string {
	if childLink == "" {
		return ChildLinkAll
	}
	return childLink
}

// State returns the current state; a nil session is anonymous
func (s *Session) State() SessionState {
	if s.Authenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}

// Authenticated reports whether the session may be used
func (s *Session) Authenticated() bool {
	return s != nil && s.authenticated
}

// Invalidate drops all session-scoped state. Safe to call repeatedly.
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	*s = Session{}
}

// ChildFilter returns the child currently selected, or "All"
func (s *Session) ChildFilter() string {
	if !s.Authenticated() {
		return ""
	}
	return s.childFilter
}

// SetChildFilter narrows or widens the selected child.
// Parents can only select their own linked child.
func (s *Session) SetChildFilter(child string) error {
	if !s.Authenticated() {
		return &AccessDeniedError{Resource: "child filter"}
	}
	if child == "" {
		child = ChildLinkAll
	}
	if s.Role == RoleParent && (child == ChildLinkAll || !CanViewChild(s.Role, s.ChildLink, child)) {
		return &AccessDeniedError{Role: s.Role, Resource: fmt.Sprintf("child %q", child)}
	}
	s.childFilter = child
	return nil
}

// CanViewPage applies the page rule to the session's role
func (s *Session) CanViewPage(page Page) bool {
	return s.Authenticated() && CanViewPage(s.Role, page)
}

// CanViewChild applies the child rule to the session's role and link
func (s *Session) CanViewChild(child string) bool {
	return s.Authenticated() && CanViewChild(s.Role, s.ChildLink, child)
}

// RequirePage returns an AccessDeniedError unless the page is visible
func (s *Session) RequirePage(page Page) error {
	if !s.CanViewPage(page) {
		return s.denied(string(page))
	}
	return nil
}

// RequireRead returns an AccessDeniedError unless table is readable
func (s *Session) RequireRead(table string) error {
	if !s.Authenticated() || !CanReadTable(s.Role, table) {
		return s.denied("table " + table)
	}
	return nil
}

// RequireWrite returns an AccessDeniedError unless table is writable
func (s *Session) RequireWrite(table string) error {
	if !s.Authenticated() || !CanWriteTable(s.Role, table) {
		return s.denied("changes to table " + table)
	}
	return nil
}

// RequireRole returns an AccessDeniedError unless the session has one of roles
func (s *Session) RequireRole(resource string, roles ...Role) error {
	if s.Authenticated() {
		for _, r := range roles {
			if s.Role == r {
				return nil
			}
		}
	}
	return s.denied(resource)
}

func (s *Session) denied(resource string) error {
	if !s.Authenticated() {
		return &AccessDeniedError{Resource: resource}
	}
	return &AccessDeniedError{Role: s.Role, Resource: resource}
}
