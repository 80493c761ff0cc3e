package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/tilpconnect/tilp/internal/domain"
)

// recentEntries is the number of progress entries shown on a dashboard
const recentEntries = 5

// DashboardService builds per-child summaries
type DashboardService struct {
	records *RecordService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(records *RecordService) *DashboardService {
	return &DashboardService{records: records}
}

// ChildDashboard counts progress entries per discipline and returns the most recent ones.
// An empty child uses the session's child filter.
func (s *DashboardService) ChildDashboard(ctx context.Context, session *domain.Session, child string) (*ChildDashboard, error) {
	if err := session.RequirePage(domain.PageDashboard); err != nil {
		return nil, err
	}
	if child == "" {
		child = session.ChildFilter()
	}
	if child == "" || child == domain.ChildLinkAll {
		return nil, fmt.Errorf("%w: select a child first", domain.ErrInvalidInput)
	}
	if !session.CanViewChild(child) {
		return nil, &domain.AccessDeniedError{Role: session.Role, Resource: fmt.Sprintf("child %q", child)}
	}

	entries, err := s.records.ListProgress(ctx, session, child)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Discipline]++
	}
	disciplines := make([]DisciplineCount, 0, len(counts))
	for name, n := range counts {
		disciplines = append(disciplines, DisciplineCount{Count: n, Discipline: name})
	}
	slices.SortFunc(disciplines, func(a, b DisciplineCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Discipline < b.Discipline {
			return -1
		}
		if a.Discipline > b.Discipline {
			return 1
		}
		return 0
	})

	return &ChildDashboard{
		ChildName:   child,
		Disciplines: disciplines,
		Recent:      entries[:min(recentEntries, len(entries))],
		Total:       len(entries),
	}, nil
}
