package csvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

var _ ports.TableStore = (*Store)(nil)

// Store implements ports.TableStore with one CSV file per table
type Store struct {
	dataDir   string
	fileLocks bool
	locks     tableLocks
	schemas   map[string]domain.Schema
}

// NewStore creates a store rooted at dataDir.
// With lockTables set, writers also take an OS file lock per table.
func NewStore(dataDir string, lockTables bool) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logging.Logger.Debug("Opening table store", "data_dir", dataDir, "lock_tables", lockTables)
	return &Store{
		dataDir:   dataDir,
		fileLocks: lockTables,
		schemas:   domain.Schemas,
	}, nil
}

// DataDir returns the directory holding the table files
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) tablePath(name string) string {
	return filepath.Join(s.dataDir, name+".csv")
}

func (s *Store) schema(name string) (domain.Schema, error) {
	schema, ok := s.schemas[name]
	if !ok {
		return domain.Schema{}, domain.NewTableError(name, domain.ErrNotFound, "no such table")
	}
	return schema, nil
}

// lock serializes access to one table. Writers also take the file lock when enabled.
func (s *Store) lock(name string, write bool) (func(), error) {
	m := s.locks.get(name)
	m.Lock()

	if !write || !s.fileLocks {
		return m.Unlock, nil
	}

	release, err := acquireFileLock(s.tablePath(name))
	if err != nil {
		m.Unlock()
		return nil, domain.NewTableError(name, err, "lock")
	}
	return func() {
		release()
		m.Unlock()
	}, nil
}

// GetTable loads the full table.
// A missing file is an empty table. A malformed file is an empty table plus a
// *domain.TableError wrapping domain.ErrStorageCorrupt.
func (s *Store) GetTable(ctx context.Context, name string) (*domain.Table, error) {
	empty := &domain.Table{Name: name}

	schema, err := s.schema(name)
	if err != nil {
		return empty, err
	}

	unlock, err := s.lock(name, false)
	if err != nil {
		return empty, err
	}
	defer unlock()

	raw, err := readFile(s.tablePath(name))
	if err != nil {
		logging.Logger.Warn("Table file is corrupt", "table", name, "error", err)
		return empty, domain.NewTableError(name, domain.ErrStorageCorrupt, "%v", err)
	}
	if raw == nil || len(raw.header) == 0 {
		return empty, nil
	}

	table := decodeTable(schema, raw)
	for _, w := range table.Warnings {
		logging.Logger.Warn("Coerced table value", "table", name, "warning", w)
	}
	return table, nil
}

// decodeTable maps raw rows onto declared columns and coerces dates.
// Declared columns absent from the file load as empty values.
func decodeTable(schema domain.Schema, raw *rawTable) *domain.Table {
	table := &domain.Table{
		Columns: schema.ColumnNames(),
		Name:    schema.Name,
		Records: make([]domain.Record, 0, len(raw.rows)),
	}
	for _, col := range raw.header {
		if _, ok := schema.Column(col); !ok {
			table.Columns = append(table.Columns, col)
		}
	}

	for i, row := range raw.rows {
		rec := rowToRecord(schema, raw.header, row)
		for _, col := range schema.Columns {
			if col.Type != domain.ColumnDate {
				continue
			}
			value := rec[col.Name]
			d := domain.ParseDate(value)
			if !d.Valid && strings.TrimSpace(value) != "" {
				// line 1 is the header
				table.Warnings = append(table.Warnings,
					fmt.Sprintf("line %d: column %s: %q is not a date", i+2, col.Name, value))
			}
			rec[col.Name] = d.String()
		}
		table.Records = append(table.Records, rec)
	}

	return table
}

func rowToRecord(schema domain.Schema, header, row []string) domain.Record {
	rec := make(domain.Record, len(schema.Columns))
	for _, col := range schema.Columns {
		rec[col.Name] = ""
	}
	for i, col := range header {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec
}

// loadForWrite reads the records of a table that is about to be rewritten.
// It refuses corrupt files and files whose header does not match the declared schema.
func (s *Store) loadForWrite(schema domain.Schema) ([]domain.Record, error) {
	raw, err := readFile(s.tablePath(schema.Name))
	if err != nil {
		return nil, domain.NewTableError(schema.Name, domain.ErrStorageCorrupt, "refusing to overwrite: %v", err)
	}
	if raw == nil || len(raw.header) == 0 {
		return nil, nil
	}

	missing, extra := diffHeader(schema, raw.header)
	if len(extra) > 0 {
		return nil, domain.NewTableError(schema.Name, domain.ErrSchemaMismatch,
			"file has undeclared columns %s", strings.Join(extra, ", "))
	}
	if len(missing) > 0 {
		return nil, domain.NewTableError(schema.Name, domain.ErrSchemaMismatch,
			"file lacks columns %s, run `tilp migrate`", strings.Join(missing, ", "))
	}

	records := make([]domain.Record, 0, len(raw.rows))
	for _, row := range raw.rows {
		records = append(records, rowToRecord(schema, raw.header, row))
	}
	return records, nil
}

// diffHeader compares a file header with the declared columns
func diffHeader(schema domain.Schema, header []string) (missing, extra []string) {
	for _, col := range schema.Columns {
		if !slices.Contains(header, col.Name) {
			missing = append(missing, col.Name)
		}
	}
	for _, col := range header {
		if _, ok := schema.Column(col); !ok {
			extra = append(extra, col)
		}
	}
	return missing, extra
}

// save rewrites the table in declared column order
func (s *Store) save(schema domain.Schema, records []domain.Record) error {
	header := schema.ColumnNames()
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(header))
		for j, col := range header {
			row[j] = rec[col]
		}
		rows[i] = row
	}

	if err := writeFile(s.tablePath(schema.Name), header, rows); err != nil {
		return domain.NewTableError(schema.Name, err, "write")
	}

	logging.Logger.Debug("Table saved", "table", schema.Name, "rows", len(rows))
	return nil
}

// normalize validates fields against the schema and canonicalizes dates.
// For appends every required column must have a value and missing columns default to "".
func normalize(schema domain.Schema, fields domain.Record, isPatch bool) (domain.Record, error) {
	out := make(domain.Record, len(schema.Columns))

	for key, value := range fields {
		if key == domain.IDColumn && schema.HasID() {
			return nil, domain.NewTableError(schema.Name, domain.ErrInvalidInput, "id is assigned by the store")
		}
		col, ok := schema.Column(key)
		if !ok {
			return nil, domain.NewTableError(schema.Name, domain.ErrSchemaMismatch, "undeclared column %q", key)
		}
		if col.Type == domain.ColumnDate && strings.TrimSpace(value) != "" {
			d := domain.ParseDate(value)
			if !d.Valid {
				return nil, domain.NewTableError(schema.Name, domain.ErrInvalidInput,
					"column %s: %q is not a date (use YYYY-MM-DD)", key, value)
			}
			value = d.String()
		}
		out[key] = value
	}

	for _, col := range schema.Columns {
		if col.Name == domain.IDColumn && schema.HasID() {
			continue
		}
		value, present := out[col.Name]
		if isPatch && !present {
			continue
		}
		if col.Required && strings.TrimSpace(value) == "" {
			return nil, domain.NewTableError(schema.Name, domain.ErrSchemaMismatch,
				"required column %s has no value", col.Name)
		}
		if !present {
			out[col.Name] = ""
		}
	}

	return out, nil
}

func nextID(records []domain.Record) int64 {
	var maxID int64
	for _, rec := range records {
		if id := rec.ID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// AppendRecord validates fields, assigns the next id for id-bearing tables and persists.
// Returns the stored record.
func (s *Store) AppendRecord(ctx context.Context, name string, fields domain.Record) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	schema, err := s.schema(name)
	if err != nil {
		return nil, err
	}
	rec, err := normalize(schema, fields, false)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lock(name, true)
	if err != nil {
		return nil, err
	}
	defer unlock()

	records, err := s.loadForWrite(schema)
	if err != nil {
		return nil, err
	}

	if schema.HasID() {
		rec[domain.IDColumn] = domain.FormatID(nextID(records))
	}
	records = append(records, rec)

	if err := s.save(schema, records); err != nil {
		return nil, err
	}

	logging.Logger.Info("Record appended", "table", name, "id", rec[domain.IDColumn])
	return rec.Clone(), nil
}

// appendUnique appends a record unless a row already has the same value in column
func (s *Store) appendUnique(ctx context.Context, name, column string, fields domain.Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	schema, err := s.schema(name)
	if err != nil {
		return false, err
	}
	rec, err := normalize(schema, fields, false)
	if err != nil {
		return false, err
	}

	unlock, err := s.lock(name, true)
	if err != nil {
		return false, err
	}
	defer unlock()

	records, err := s.loadForWrite(schema)
	if err != nil {
		return false, err
	}
	for _, existing := range records {
		if existing[column] == rec[column] {
			return false, nil
		}
	}

	if schema.HasID() {
		rec[domain.IDColumn] = domain.FormatID(nextID(records))
	}
	if err := s.save(schema, append(records, rec)); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateRecord patches the row with id. Returns false without touching the file when no row matches.
func (s *Store) UpdateRecord(ctx context.Context, name string, id int64, patch domain.Record) (bool, error) {
	n, err := s.mutate(ctx, name, "update", true, matchID(id), patch)
	return n > 0, err
}

// DeleteRecord removes the row with id. Returns false without touching the file when no row matches.
func (s *Store) DeleteRecord(ctx context.Context, name string, id int64) (bool, error) {
	n, err := s.mutate(ctx, name, "delete", true, matchID(id), nil)
	return n > 0, err
}

// UpdateWhere patches every row whose column equals value
func (s *Store) UpdateWhere(ctx context.Context, name, column, value string, patch domain.Record) (int, error) {
	if err := s.checkColumn(name, column); err != nil {
		return 0, err
	}
	return s.mutate(ctx, name, "update", false, matchColumn(column, value), patch)
}

// DeleteWhere removes every row whose column equals value
func (s *Store) DeleteWhere(ctx context.Context, name, column, value string) (int, error) {
	if err := s.checkColumn(name, column); err != nil {
		return 0, err
	}
	return s.mutate(ctx, name, "delete", false, matchColumn(column, value), nil)
}

func matchID(id int64) func(domain.Record) bool {
	return func(rec domain.Record) bool { return rec.ID() == id }
}

func matchColumn(column, value string) func(domain.Record) bool {
	return func(rec domain.Record) bool { return rec[column] == value }
}

func (s *Store) checkColumn(name, column string) error {
	schema, err := s.schema(name)
	if err != nil {
		return err
	}
	if _, ok := schema.Column(column); !ok {
		return domain.NewTableError(name, domain.ErrSchemaMismatch, "undeclared column %q", column)
	}
	return nil
}

// mutate is the shared load-filter-rewrite cycle for "update" and "delete".
// The file is rewritten only when a row matched.
func (s *Store) mutate(ctx context.Context, name, op string, byID bool, match func(domain.Record) bool, patch domain.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	schema, err := s.schema(name)
	if err != nil {
		return 0, err
	}
	if byID && !schema.HasID() {
		return 0, domain.NewTableError(name, domain.ErrUnsupportedOperation, "%s by id needs an id column", op)
	}

	remove := op == "delete"
	var normalized domain.Record
	if !remove {
		if normalized, err = normalize(schema, patch, true); err != nil {
			return 0, err
		}
		if len(normalized) == 0 {
			return 0, domain.NewTableError(name, domain.ErrInvalidInput, "nothing to update")
		}
	}

	unlock, err := s.lock(name, true)
	if err != nil {
		return 0, err
	}
	defer unlock()

	records, err := s.loadForWrite(schema)
	if err != nil {
		return 0, err
	}

	kept := make([]domain.Record, 0, len(records))
	matched := 0
	for _, rec := range records {
		if !match(rec) {
			kept = append(kept, rec)
			continue
		}
		matched++
		if remove {
			continue
		}
		for k, v := range normalized {
			rec[k] = v
		}
		kept = append(kept, rec)
	}

	if matched == 0 {
		logging.Logger.Debug("No matching rows", "table", name, "op", op)
		return 0, nil
	}

	if err := s.save(schema, kept); err != nil {
		return 0, err
	}

	logging.Logger.Info("Table rows changed", "table", name, "op", op, "rows", matched)
	return matched, nil
}
