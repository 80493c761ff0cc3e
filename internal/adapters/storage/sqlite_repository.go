package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

const maxRetries = 3

// SQLiteLedger implements ports.SyncLedger using GORM
type SQLiteLedger struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SyncLedger = (*SQLiteLedger)(nil)

// gormLogger routes GORM output to the tilp logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TILP_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteLedger opens (or creates) the ledger database at dbPath
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// pragmas in the DSN apply to every pooled connection
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&SyncMarkerModel{}, &SyncRunModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Sync ledger opened", "path", dbPath)
	return &SQLiteLedger{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteLedger) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetMarker implements SyncMarkerStore.GetMarker
func (r *SQLiteLedger) GetMarker(ctx context.Context, path string) (*domain.SyncMarker, error) {
	var model SyncMarkerModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("path = ?", path).First(&model).Error
	}, maxRetries)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load sync marker for %s: %w", path, err)
	}

	marker := syncMarkerModelToDomain(model)
	return &marker, nil
}

// ListMarkers implements SyncMarkerStore.ListMarkers
func (r *SQLiteLedger) ListMarkers(ctx context.Context) ([]domain.SyncMarker, error) {
	var models []SyncMarkerModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("path").Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync markers: %w", err)
	}

	markers := make([]domain.SyncMarker, 0, len(models))
	for _, m := range models {
		markers = append(markers, syncMarkerModelToDomain(m))
	}
	return markers, nil
}

// SaveMarker implements SyncMarkerStore.SaveMarker (insert or replace by path)
func (r *SQLiteLedger) SaveMarker(ctx context.Context, marker domain.SyncMarker) error {
	model := domainToSyncMarkerModel(marker)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"marker", "content_hash", "size", "synced_at", "updated_at"}),
		}).Create(&model).Error
	}, maxRetries)
}

// ForgetMarker implements SyncMarkerStore.ForgetMarker
func (r *SQLiteLedger) ForgetMarker(ctx context.Context, path string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Where("path = ?", path).Delete(&SyncMarkerModel{}).Error
	}, maxRetries)
}

// RecordRun implements SyncRunRecorder.RecordRun
func (r *SQLiteLedger) RecordRun(ctx context.Context, run domain.SyncRun) error {
	model := domainToSyncRunModel(run)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, maxRetries)
}

// LastRun implements SyncRunRecorder.LastRun
func (r *SQLiteLedger) LastRun(ctx context.Context) (*domain.SyncRun, error) {
	var model SyncRunModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("started_at desc").First(&model).Error
	}, maxRetries)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load last sync run: %w", err)
	}

	run := syncRunModelToDomain(model)
	return &run, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			logging.Logger.Debug("Database busy, retrying", "attempt", i+1)
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
