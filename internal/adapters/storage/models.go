package storage

import "time"

// SyncMarkerModel is the GORM model for the sync_markers table
type SyncMarkerModel struct {
	ContentHash string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	Marker      string    `gorm:"not null"`
	Path        string    `gorm:"primaryKey"`
	Size        int64     `gorm:"not null;default:0"`
	SyncedAt    time.Time `gorm:"not null;index:idx_synced_at"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (SyncMarkerModel) TableName() string { return "sync_markers" }

// SyncRunModel is the GORM model for the sync_runs table
type SyncRunModel struct {
	CreatedAt  time.Time
	Failed     int       `gorm:"not null;default:0"`
	FinishedAt time.Time `gorm:"not null"`
	ID         string    `gorm:"primaryKey"`
	StartedAt  time.Time `gorm:"not null;index:idx_started_at"`
	Succeeded  int       `gorm:"not null;default:0"`
	Username   string    `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (SyncRunModel) TableName() string { return "sync_runs" }
