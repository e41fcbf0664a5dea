package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

type watchProgressRow struct {
	ViewerID        string    `gorm:"primaryKey;column:viewer_id;size:320"`
	VideoID         string    `gorm:"primaryKey;column:video_id;size:128"`
	SecondsWatched  float64   `gorm:"column:seconds_watched"`
	DurationSeconds float64   `gorm:"column:duration_seconds"`
	Watched         bool      `gorm:"column:watched"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (watchProgressRow) TableName() string { return "watch_progress" }

// ProgressRepository is the durable, shared watch-progress store. The
// merge runs as a single conflict upsert so the monotonic fields hold
// under concurrent reports across instances.
type ProgressRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewProgressRepository(db *gorm.DB, ttl time.Duration) (*ProgressRepository, error) {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if err := db.AutoMigrate(&watchProgressRow{}); err != nil {
		return nil, err
	}
	return &ProgressRepository{db: db, ttl: ttl}, nil
}

func (r *ProgressRepository) Merge(ctx context.Context, report domain.ProgressReport, now time.Time) (domain.WatchProgress, error) {
	incoming := domain.MergeProgress(nil, report, now)
	row := watchProgressRow{
		ViewerID:        incoming.ViewerID,
		VideoID:         incoming.VideoID,
		SecondsWatched:  incoming.SecondsWatched,
		DurationSeconds: incoming.DurationSeconds,
		Watched:         incoming.Watched,
		UpdatedAt:       incoming.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "viewer_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seconds_watched":  gorm.Expr("GREATEST(watch_progress.seconds_watched, EXCLUDED.seconds_watched)"),
			"duration_seconds": gorm.Expr("EXCLUDED.duration_seconds"),
			"watched":          gorm.Expr("watch_progress.watched OR EXCLUDED.watched"),
			"updated_at":       gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&row).Error
	if err != nil {
		return domain.WatchProgress{}, err
	}

	stored, err := r.Get(ctx, incoming.ViewerID, incoming.VideoID)
	if err != nil {
		return domain.WatchProgress{}, err
	}
	if stored == nil {
		return incoming, nil
	}
	return *stored, nil
}

func (r *ProgressRepository) Get(ctx context.Context, viewerID, videoID string) (*domain.WatchProgress, error) {
	var row watchProgressRow
	err := r.db.WithContext(ctx).
		Where("viewer_id = ? AND video_id = ?", viewerID, videoID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.WatchProgress{
		ViewerID:        row.ViewerID,
		VideoID:         row.VideoID,
		SecondsWatched:  row.SecondsWatched,
		DurationSeconds: row.DurationSeconds,
		Watched:         row.Watched,
		UpdatedAt:       row.UpdatedAt.UTC(),
	}, nil
}

func (r *ProgressRepository) Cleanup(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("updated_at < ?", now.Add(-r.ttl)).
		Delete(&watchProgressRow{}).Error
}
