package domain

import "fmt"

// Role is the access level attached to a user account
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleParent Role = "parent"
	RoleStaff  Role = "staff"
)

// ChildLinkAll means no single-child restriction
const ChildLinkAll = "All"

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleParent, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q (expected admin, staff or parent)", ErrInvalidInput, s)
}

// Page is a top-level screen of the application
type Page string

const (
	PageChildManagement Page = "Child Management"
	PageDashboard       Page = "Dashboard"
	PageDataAnalytics   Page = "Data & Analytics"
	PageProgress        Page = "Progress Tracking"
	PageSessionPlanning Page = "Session Planning"
	PageUserManagement  Page = "User Management"
)

// AllPages lists pages in menu order
var AllPages = []Page{
	PageDashboard,
	PageProgress,
	PageSessionPlanning,
	PageDataAnalytics,
	PageUserManagement,
	PageChildManagement,
}

// CanViewPage reports whether role may open page.
// Admin and staff see everything; parents only their dashboard and progress notes.
func CanViewPage(role Role, page Page) bool {
	switch role {
	case RoleAdmin, RoleStaff:
		return true
	case RoleParent:
		return page == PageDashboard || page == PageProgress
	}
	return false
}

// CanViewChild reports whether a user with role and childLink may see target.
// A parent linked to "All" (or to nothing) sees no child at all.
func CanViewChild(role Role, childLink, target string) bool {
	switch role {
	case RoleAdmin, RoleStaff:
		return true
	case RoleParent:
		if childLink == "" || childLink == ChildLinkAll {
			return false
		}
		return childLink == target
	}
	return false
}

// CanWriteTable reports whether role may mutate table
func CanWriteTable(role Role, table string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleStaff:
		return table == TableProgress || table == TableSessionPlans
	}
	return false
}

// CanReadTable reports whether role may read table at all (row filtering is separate)
func CanReadTable(role Role, table string) bool {
	switch role {
	case RoleAdmin, RoleStaff:
		return true
	case RoleParent:
		switch table {
		case TableChildren, TableProgress, TableDisciplines, TableGoalAreas:
			return true
		}
	}
	return false
}
