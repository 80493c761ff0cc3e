package csvstore

import (
	"context"
	"strings"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

var _ ports.LookupRegistry = (*Registry)(nil)

const nameColumn = "name"

// Registry manages the name-only lookup tables on top of a Store
type Registry struct {
	store *Store
}

// NewRegistry creates a registry backed by store
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

func lookupTable(table string) error {
	schema, err := domain.LookupSchema(table)
	if err != nil {
		return err
	}
	if !schema.IsLookup() {
		return domain.NewTableError(table, domain.ErrInvalidInput, "not a lookup table")
	}
	return nil
}

func cleanName(table, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewTableError(table, domain.ErrInvalidInput, "name must not be empty")
	}
	return name, nil
}

// AddName inserts name unless it is already present
func (r *Registry) AddName(ctx context.Context, table, name string) error {
	if err := lookupTable(table); err != nil {
		return err
	}
	name, err := cleanName(table, name)
	if err != nil {
		return err
	}

	added, err := r.store.appendUnique(ctx, table, nameColumn, domain.Record{nameColumn: name})
	if err != nil {
		return err
	}
	if !added {
		logging.Logger.Debug("Lookup name already present", "table", table, "name", name)
	}
	return nil
}

// RemoveName deletes every row with exactly that name
func (r *Registry) RemoveName(ctx context.Context, table, name string) error {
	if err := lookupTable(table); err != nil {
		return err
	}
	name, err := cleanName(table, name)
	if err != nil {
		return err
	}

	_, err = r.store.DeleteWhere(ctx, table, nameColumn, name)
	return err
}

// ListNames returns the names in storage order
func (r *Registry) ListNames(ctx context.Context, table string) ([]string, error) {
	if err := lookupTable(table); err != nil {
		return nil, err
	}

	t, err := r.store.GetTable(ctx, table)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, t.Len())
	for _, rec := range t.Records {
		if name := strings.TrimSpace(rec[nameColumn]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
