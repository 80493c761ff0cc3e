package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// passwordColumn never leaves the service layer
const passwordColumn = "password"

// RecordService is the data-access boundary: every table read and write
// passes through the session's permissions and child filter here
type RecordService struct {
	lookups ports.LookupRegistry
	tables  ports.TableStore
}

// NewRecordService creates a new RecordService
func NewRecordService(tables ports.TableStore, lookups ports.LookupRegistry) *RecordService {
	return &RecordService{
		lookups: lookups,
		tables:  tables,
	}
}

// childColumn returns the column naming a child in table, or ""
func childColumn(table string) string {
	switch table {
	case domain.TableChildren, domain.TableProgress:
		return "child_name"
	}
	return ""
}

// visible reports whether a row naming child may be shown in the session under filter
func visible(session *domain.Session, filter, child string) bool {
	if !session.CanViewChild(child) {
		return false
	}
	return filter == domain.ChildLinkAll || filter == child
}

// GetTable returns the rows of table the session is allowed to see.
// Password hashes are stripped and child-bearing tables follow the child filter.
// A corrupt table is returned empty together with its diagnostic.
func (s *RecordService) GetTable(ctx context.Context, session *domain.Session, table string) (*domain.Table, error) {
	return s.getTable(ctx, session, table, session.ChildFilter())
}

// getTable is GetTable with child-bearing rows narrowed to filter instead of the session's filter
func (s *RecordService) getTable(ctx context.Context, session *domain.Session, table, filter string) (*domain.Table, error) {
	if err := session.RequireRead(table); err != nil {
		return nil, err
	}

	loaded, loadErr := s.tables.GetTable(ctx, table)
	if loaded == nil {
		return nil, loadErr
	}

	out := &domain.Table{
		Columns:  loaded.Columns,
		Name:     loaded.Name,
		Warnings: loaded.Warnings,
	}
	column := childColumn(table)
	for _, rec := range loaded.Records {
		if column != "" && !visible(session, filter, rec[column]) {
			continue
		}
		if table == domain.TableUsers {
			rec = rec.Without(passwordColumn)
		}
		out.Records = append(out.Records, rec)
	}
	if table == domain.TableUsers {
		out.Columns = slices.DeleteFunc(slices.Clone(out.Columns), func(c string) bool {
			return c == passwordColumn
		})
	}

	if loadErr != nil {
		logging.Logger.Warn("Table could not be read", "table", table, "error", loadErr)
	}
	return out, loadErr
}

// rejectManaged refuses raw writes to tables owned by the roster and lookup services
func rejectManaged(table string) error {
	switch table {
	case domain.TableUsers:
		return fmt.Errorf("%w: users are managed with the users commands", domain.ErrUnsupportedOperation)
	case domain.TableChildren:
		return fmt.Errorf("%w: children are managed with the children commands", domain.ErrUnsupportedOperation)
	case domain.TableDisciplines, domain.TableGoalAreas:
		return fmt.Errorf("%w: %s is managed with the lookups commands", domain.ErrUnsupportedOperation, table)
	}
	return nil
}

// checkStatus validates the status column of a progress row
func checkStatus(table string, fields domain.Record) error {
	status, ok := fields["status"]
	if table != domain.TableProgress || !ok || status == "" {
		return nil
	}
	if !domain.ProgressStatus(status).Valid() {
		return fmt.Errorf("%w: status %q (expected one of %s)", domain.ErrInvalidInput, status, statusList())
	}
	return nil
}

func statusList() string {
	names := make([]string, len(domain.ProgressStatuses))
	for i, s := range domain.ProgressStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// AppendRecord adds a row to table and returns it with its assigned id
func (s *RecordService) AppendRecord(ctx context.Context, session *domain.Session, table string, fields domain.Record) (domain.Record, error) {
	if err := session.RequireWrite(table); err != nil {
		return nil, err
	}
	if err := rejectManaged(table); err != nil {
		return nil, err
	}
	if err := checkStatus(table, fields); err != nil {
		return nil, err
	}

	rec, err := s.tables.AppendRecord(ctx, table, fields)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Record appended", "table", table, "id", rec[domain.IDColumn], "by", session.Username)
	return rec, nil
}

// UpdateRecord patches the row with id. Returns false when no row has that id.
func (s *RecordService) UpdateRecord(ctx context.Context, session *domain.Session, table string, id int64, patch domain.Record) (bool, error) {
	if err := session.RequireWrite(table); err != nil {
		return false, err
	}
	if err := rejectManaged(table); err != nil {
		return false, err
	}
	if err := checkStatus(table, patch); err != nil {
		return false, err
	}

	updated, err := s.tables.UpdateRecord(ctx, table, id, patch)
	if err != nil {
		return false, err
	}

	logging.Logger.Info("Record update", "table", table, "id", id, "found", updated, "by", session.Username)
	return updated, nil
}

// DeleteRecord removes the row with id. Returns false when no row has that id.
func (s *RecordService) DeleteRecord(ctx context.Context, session *domain.Session, table string, id int64) (bool, error) {
	if err := session.RequireWrite(table); err != nil {
		return false, err
	}
	if err := rejectManaged(table); err != nil {
		return false, err
	}

	deleted, err := s.tables.DeleteRecord(ctx, table, id)
	if err != nil {
		return false, err
	}

	logging.Logger.Info("Record delete", "table", table, "id", id, "found", deleted, "by", session.Username)
	return deleted, nil
}

// requireLookup checks that value is listed in the lookup table, when given
func (s *RecordService) requireLookup(ctx context.Context, table, value string) error {
	if value == "" {
		return nil
	}
	names, err := s.lookups.ListNames(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	if !slices.Contains(names, value) {
		return fmt.Errorf("%w: %q is not listed in %s", domain.ErrInvalidInput, value, table)
	}
	return nil
}

// requireChild checks that a child profile with name exists
func (s *RecordService) requireChild(ctx context.Context, name string) error {
	children, err := s.tables.GetTable(ctx, domain.TableChildren)
	if err != nil {
		return fmt.Errorf("failed to load children: %w", err)
	}
	if _, ok := children.Find("child_name", name); !ok {
		return fmt.Errorf("%w: child %q", domain.ErrNotFound, name)
	}
	return nil
}

// AddProgress validates and stores a progress note
func (s *RecordService) AddProgress(ctx context.Context, session *domain.Session, entry domain.ProgressEntry) (domain.ProgressEntry, error) {
	if err := session.RequireWrite(domain.TableProgress); err != nil {
		return domain.ProgressEntry{}, err
	}

	entry.ChildName = strings.TrimSpace(entry.ChildName)
	if entry.ChildName == "" {
		return domain.ProgressEntry{}, fmt.Errorf("%w: child name is required", domain.ErrInvalidInput)
	}
	if !entry.Date.Valid {
		return domain.ProgressEntry{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if !entry.Status.Valid() {
		return domain.ProgressEntry{}, fmt.Errorf("%w: status %q (expected one of %s)", domain.ErrInvalidInput, entry.Status, statusList())
	}
	if err := s.requireChild(ctx, entry.ChildName); err != nil {
		return domain.ProgressEntry{}, err
	}
	if err := s.requireLookup(ctx, domain.TableDisciplines, entry.Discipline); err != nil {
		return domain.ProgressEntry{}, err
	}
	if err := s.requireLookup(ctx, domain.TableGoalAreas, entry.GoalArea); err != nil {
		return domain.ProgressEntry{}, err
	}

	rec, err := s.AppendRecord(ctx, session, domain.TableProgress, entry.Record())
	if err != nil {
		return domain.ProgressEntry{}, err
	}
	return domain.ProgressFromRecord(rec), nil
}

// ListProgress returns visible progress entries, newest first.
// An empty child means every child the session may see.
func (s *RecordService) ListProgress(ctx context.Context, session *domain.Session, child string) ([]domain.ProgressEntry, error) {
	if child != "" && !session.CanViewChild(child) {
		return nil, &domain.AccessDeniedError{Role: session.Role, Resource: fmt.Sprintf("child %q", child)}
	}

	// An explicitly named child overrides the session's filter
	filter := session.ChildFilter()
	if child != "" {
		filter = child
	}
	table, err := s.getTable(ctx, session, domain.TableProgress, filter)
	if err != nil {
		return nil, err
	}

	var entries []domain.ProgressEntry
	for _, rec := range table.Records {
		if child != "" && rec["child_name"] != child {
			continue
		}
		entries = append(entries, domain.ProgressFromRecord(rec))
	}
	sortNewestFirst(entries)
	return entries, nil
}

// sortNewestFirst orders entries by date descending; unknown dates go last
func sortNewestFirst(entries []domain.ProgressEntry) {
	slices.SortStableFunc(entries, func(a, b domain.ProgressEntry) int {
		switch {
		case a.Date.Valid && !b.Date.Valid:
			return -1
		case !a.Date.Valid && b.Date.Valid:
			return 1
		}
		return b.Date.Time.Compare(a.Date.Time)
	})
}

// AddSessionPlan validates and stores a daily session plan
func (s *RecordService) AddSessionPlan(ctx context.Context, session *domain.Session, plan domain.SessionPlan) (domain.SessionPlan, error) {
	if err := session.RequireWrite(domain.TableSessionPlans); err != nil {
		return domain.SessionPlan{}, err
	}
	if !plan.Date.Valid {
		return domain.SessionPlan{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	rec, err := s.AppendRecord(ctx, session, domain.TableSessionPlans, plan.Record())
	if err != nil {
		return domain.SessionPlan{}, err
	}
	return domain.SessionPlanFromRecord(rec), nil
}

// ListSessionPlans returns every session plan, newest first
func (s *RecordService) ListSessionPlans(ctx context.Context, session *domain.Session) ([]domain.SessionPlan, error) {
	if err := session.RequirePage(domain.PageSessionPlanning); err != nil {
		return nil, err
	}

	table, err := s.GetTable(ctx, session, domain.TableSessionPlans)
	if err != nil {
		return nil, err
	}

	plans := make([]domain.SessionPlan, 0, table.Len())
	for _, rec := range table.Records {
		plans = append(plans, domain.SessionPlanFromRecord(rec))
	}
	slices.SortStableFunc(plans, func(a, b domain.SessionPlan) int {
		return b.Date.Time.Compare(a.Date.Time)
	})
	return plans, nil
}
