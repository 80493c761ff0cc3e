package csvstore

import (
	"context"
	"os"
	"strings"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
)

// Migrate rewrites every table file whose header lacks declared columns.
// Returns the names of the migrated tables. Files with undeclared columns are left alone
// and reported with domain.ErrSchemaMismatch.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	var migrated []string

	for _, name := range domain.TableNames {
		if err := ctx.Err(); err != nil {
			return migrated, err
		}

		changed, err := s.migrateTable(s.schemas[name])
		if err != nil {
			return migrated, err
		}
		if changed {
			migrated = append(migrated, name)
		}
	}

	logging.Logger.Info("Migration finished", "migrated", migrated)
	return migrated, nil
}

func (s *Store) migrateTable(schema domain.Schema) (bool, error) {
	unlock, err := s.lock(schema.Name, true)
	if err != nil {
		return false, err
	}
	defer unlock()

	raw, err := readFile(s.tablePath(schema.Name))
	if err != nil {
		return false, domain.NewTableError(schema.Name, domain.ErrStorageCorrupt, "%v", err)
	}
	if raw == nil || len(raw.header) == 0 {
		return false, nil
	}

	missing, extra := diffHeader(schema, raw.header)
	if len(extra) > 0 {
		return false, domain.NewTableError(schema.Name, domain.ErrSchemaMismatch,
			"file has undeclared columns %s", strings.Join(extra, ", "))
	}
	if len(missing) == 0 {
		return false, nil
	}

	records := make([]domain.Record, 0, len(raw.rows))
	for _, row := range raw.rows {
		records = append(records, rowToRecord(schema, raw.header, row))
	}
	if err := s.save(schema, records); err != nil {
		return false, err
	}

	logging.Logger.Info("Table migrated", "table", schema.Name, "added_columns", missing)
	return true, nil
}

// ListTableFiles returns the table files present on disk in declaration order
func (s *Store) ListTableFiles(ctx context.Context) ([]domain.TableFile, error) {
	var files []domain.TableFile
	for _, name := range domain.TableNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := s.tablePath(name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, domain.NewTableError(name, err, "stat")
		}
		if info.IsDir() {
			continue
		}
		files = append(files, domain.TableFile{Name: name, Path: path})
	}
	return files, nil
}
