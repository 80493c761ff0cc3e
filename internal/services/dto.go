package services

import "github.com/tilpconnect/tilp/internal/domain"

// CreateUserParams contains parameters for creating a user account
type CreateUserParams struct {
	ChildLink string
	Password  string
	Role      string
	Username  string
}

// UpdateUserParams contains the fields to change on a user account.
// Empty values are left unchanged.
type UpdateUserParams struct {
	ChildLink string
	Password  string
	Role      string
}

// DisciplineCount is the number of progress entries logged for a discipline
type DisciplineCount struct {
	Count      int
	Discipline string
}

// ChildDashboard summarises the progress of one child
type ChildDashboard struct {
	ChildName   string
	Disciplines []DisciplineCount
	Recent      []domain.ProgressEntry
	Total       int
}

// SyncStatus is what the ledger knows about past syncs
type SyncStatus struct {
	Configured bool
	LastRun    *domain.SyncRun
	LocalDir   string
	Markers    []domain.SyncMarker
	Remote     string
}

// RosterFile is the YAML document accepted by ImportRoster
type RosterFile struct {
	Children []RosterChild `yaml:"children"`
	Lookups  RosterLookups `yaml:"lookups"`
	Users    []RosterUser  `yaml:"users"`
}

// RosterChild is one child entry of a roster file
type RosterChild struct {
	DateOfBirth string `yaml:"date_of_birth"`
	Name        string `yaml:"name"`
	Parent      string `yaml:"parent"`
}

// RosterLookups lists lookup names of a roster file
type RosterLookups struct {
	Disciplines []string `yaml:"disciplines"`
	GoalAreas   []string `yaml:"goal_areas"`
}

// RosterUser is one account entry of a roster file
type RosterUser struct {
	ChildLink string `yaml:"child_link"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
	Username  string `yaml:"username"`
}

// InitResult reports what Init seeded
type InitResult struct {
	AdminCreated bool
	LookupsAdded int
	Migrated     []string
}

// ImportResult counts what ImportRoster created and skipped
type ImportResult struct {
	ChildrenAdded int
	LookupsAdded  int
	Skipped       []string
	UsersAdded    int
}
