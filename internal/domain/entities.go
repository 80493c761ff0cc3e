package domain

import "strconv"

// User is a login account (domain entity)
type User struct {
	ChildLink    string
	PasswordHash string
	Role         Role
	Username     string
}

// Record converts the user to its table row
func (u User) Record() Record {
	return Record{
		"username":   u.Username,
		"password":   u.PasswordHash,
		"role":       string(u.Role),
		"child_link": u.ChildLink,
	}
}

// UserFromRecord converts a users row to a User
func UserFromRecord(r Record) User {
	return User{
		ChildLink:    r["child_link"],
		PasswordHash: r["password"],
		Role:         Role(r["role"]),
		Username:     r["username"],
	}
}

// Child is a child profile
type Child struct {
	DateOfBirth    Date
	ID             int64
	Name           string
	ParentUsername string
}

// Record converts the child to its table row (id is assigned by the store)
func (c Child) Record() Record {
	return Record{
		"child_name":      c.Name,
		"parent_username": c.ParentUsername,
		"date_of_birth":   c.DateOfBirth.String(),
	}
}

// ChildFromRecord converts a children row to a Child
func ChildFromRecord(r Record) Child {
	return Child{
		DateOfBirth:    r.Date("date_of_birth"),
		ID:             r.ID(),
		Name:           r["child_name"],
		ParentUsername: r["parent_username"],
	}
}

// ProgressStatus is the observed state of a goal
type ProgressStatus string

const (
	StatusMetGoal        ProgressStatus = "Met Goal"
	StatusNotObserved    ProgressStatus = "Not Observed"
	StatusWorkingTowards ProgressStatus = "Working Towards"
)

// ProgressStatuses lists valid statuses in form order
var ProgressStatuses = []ProgressStatus{StatusMetGoal, StatusWorkingTowards, StatusNotObserved}

// Valid reports whether s is a known status
func (s ProgressStatus) Valid() bool {
	for _, known := range ProgressStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ProgressEntry is one progress note for a child.
// ChildName references Child by name, not id.
type ProgressEntry struct {
	ChildName  string
	Date       Date
	Discipline string
	GoalArea   string
	ID         int64
	MediaPath  string
	Notes      string
	Status     ProgressStatus
}

// Record converts the entry to its table row
func (p ProgressEntry) Record() Record {
	return Record{
		"date":       p.Date.String(),
		"child_name": p.ChildName,
		"discipline": p.Discipline,
		"goal_area":  p.GoalArea,
		"status":     string(p.Status),
		"notes":      p.Notes,
		"media_path": p.MediaPath,
	}
}

// ProgressFromRecord converts a progress row to a ProgressEntry
func ProgressFromRecord(r Record) ProgressEntry {
	return ProgressEntry{
		ChildName:  r["child_name"],
		Date:       r.Date("date"),
		Discipline: r["discipline"],
		GoalArea:   r["goal_area"],
		ID:         r.ID(),
		MediaPath:  r["media_path"],
		Notes:      r["notes"],
		Status:     ProgressStatus(r["status"]),
	}
}

// SessionPlan is a daily plan with its five plan components
type SessionPlan struct {
	ClosingRoutine  string
	Date            Date
	ID              int64
	InternalNotes   string
	LeadStaff       string
	LearningBlock   string
	MaterialsNeeded string
	RegulationBreak string
	SocialPlay      string
	SupportStaff    string
	WarmUp          string
}

// Record converts the plan to its table row
func (p SessionPlan) Record() Record {
	return Record{
		"date":             p.Date.String(),
		"lead_staff":       p.LeadStaff,
		"support_staff":    p.SupportStaff,
		"warm_up":          p.WarmUp,
		"learning_block":   p.LearningBlock,
		"regulation_break": p.RegulationBreak,
		"social_play":      p.SocialPlay,
		"closing_routine":  p.ClosingRoutine,
		"materials_needed": p.MaterialsNeeded,
		"internal_notes":   p.InternalNotes,
	}
}

// SessionPlanFromRecord converts a session_plans row to a SessionPlan
func SessionPlanFromRecord(r Record) SessionPlan {
	return SessionPlan{
		ClosingRoutine:  r["closing_routine"],
		Date:            r.Date("date"),
		ID:              r.ID(),
		InternalNotes:   r["internal_notes"],
		LeadStaff:       r["lead_staff"],
		LearningBlock:   r["learning_block"],
		MaterialsNeeded: r["materials_needed"],
		RegulationBreak: r["regulation_break"],
		SocialPlay:      r["social_play"],
		SupportStaff:    r["support_staff"],
		WarmUp:          r["warm_up"],
	}
}

// FormatID renders a surrogate id for a record
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
