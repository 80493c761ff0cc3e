package services

import (
	"context"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// LookupService guards the disciplines and goal areas lists
type LookupService struct {
	registry ports.LookupRegistry
}

// NewLookupService creates a new LookupService
func NewLookupService(registry ports.LookupRegistry) *LookupService {
	return &LookupService{registry: registry}
}

// ListNames returns the names of a lookup table in storage order
func (s *LookupService) ListNames(ctx context.Context, session *domain.Session, table string) ([]string, error) {
	if err := session.RequireRead(table); err != nil {
		return nil, err
	}
	return s.registry.ListNames(ctx, table)
}

// AddName adds name unless it is already listed
func (s *LookupService) AddName(ctx context.Context, session *domain.Session, table, name string) error {
	if err := session.RequireWrite(table); err != nil {
		return err
	}
	if err := s.registry.AddName(ctx, table, name); err != nil {
		return err
	}
	logging.Logger.Info("Lookup name added", "table", table, "name", name, "by", session.Username)
	return nil
}

// RemoveName removes every row with exactly name
func (s *LookupService) RemoveName(ctx context.Context, session *domain.Session, table, name string) error {
	if err := session.RequireWrite(table); err != nil {
		return err
	}
	if err := s.registry.RemoveName(ctx, table, name); err != nil {
		return err
	}
	logging.Logger.Info("Lookup name removed", "table", table, "name", name, "by", session.Username)
	return nil
}
