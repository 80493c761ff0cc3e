package storage

import (
	"github.com/tilpconnect/tilp/internal/domain"
)

// syncMarkerModelToDomain converts a SyncMarkerModel (GORM) to domain.SyncMarker
func syncMarkerModelToDomain(m SyncMarkerModel) domain.SyncMarker {
	return domain.SyncMarker{
		ContentHash: m.ContentHash,
		Marker:      m.Marker,
		Path:        m.Path,
		Size:        m.Size,
		SyncedAt:    m.SyncedAt,
	}
}

// domainToSyncMarkerModel converts a domain.SyncMarker to SyncMarkerModel (GORM)
func domainToSyncMarkerModel(s domain.SyncMarker) SyncMarkerModel {
	return SyncMarkerModel{
		ContentHash: s.ContentHash,
		Marker:      s.Marker,
		Path:        s.Path,
		Size:        s.Size,
		SyncedAt:    s.SyncedAt,
	}
}

// syncRunModelToDomain converts a SyncRunModel (GORM) to domain.SyncRun
func syncRunModelToDomain(m SyncRunModel) domain.SyncRun {
	return domain.SyncRun{
		Failed:     m.Failed,
		FinishedAt: m.FinishedAt,
		ID:         m.ID,
		StartedAt:  m.StartedAt,
		Succeeded:  m.Succeeded,
		Username:   m.Username,
	}
}

// domainToSyncRunModel converts a domain.SyncRun to SyncRunModel (GORM)
func domainToSyncRunModel(r domain.SyncRun) SyncRunModel {
	return SyncRunModel{
		Failed:     r.Failed,
		FinishedAt: r.FinishedAt,
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		Succeeded:  r.Succeeded,
		Username:   r.Username,
	}
}
