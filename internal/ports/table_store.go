package ports

import (
	"context"

	"github.com/tilpconnect/tilp/internal/domain"
)

// TableReader loads whole tables
type TableReader interface {
	// GetTable returns every record of the table. A missing file is an empty table.
	GetTable(ctx context.Context, name string) (*domain.Table, error)
}

// TableWriter mutates tables with full-file rewrites
type TableWriter interface {
	AppendRecord(ctx context.Context, name string, fields domain.Record) (domain.Record, error)
	DeleteRecord(ctx context.Context, name string, id int64) (bool, error)
	UpdateRecord(ctx context.Context, name string, id int64, patch domain.Record) (bool, error)
}

// TableMaintainer handles table files as a whole
type TableMaintainer interface {
	DataDir() string
	ListTableFiles(ctx context.Context) ([]domain.TableFile, error)
	Migrate(ctx context.Context) ([]string, error)
}

// KeyedTableWriter mutates rows matched by a column value, for tables without ids
type KeyedTableWriter interface {
	// DeleteWhere removes every row whose column equals value and returns the count
	DeleteWhere(ctx context.Context, name, column, value string) (int, error)
	// UpdateWhere patches every row whose column equals value and returns the count
	UpdateWhere(ctx context.Context, name, column, value string, patch domain.Record) (int, error)
}

// TableStore is the composite interface
type TableStore interface {
	KeyedTableWriter
	TableMaintainer
	TableReader
	TableWriter
}

// LookupRegistry manages name-only reference lists
type LookupRegistry interface {
	AddName(ctx context.Context, table, name string) error
	ListNames(ctx context.Context, table string) ([]string, error)
	RemoveName(ctx context.Context, table, name string) error
}
