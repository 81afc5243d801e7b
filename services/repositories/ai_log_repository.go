package repositories

import (
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"gorm.io/gorm"
)

type AILogRepository struct {
	BaseRepository
}

func NewAILogRepository(db *gorm.DB) *AILogRepository {
	return &AILogRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *AILogRepository) Create(entry *model.AIGenerationLog) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return ds.db.Create(entry).Error
}

func (ds *AILogRepository) ListByUser(userID string, limit int) ([]model.AIGenerationLog, error) {
	var logs []model.AIGenerationLog
	_, limit = paginate(1, limit)
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteOlderThan prunes log rows created before cutoff and reports how many went.
func (ds *AILogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := ds.db.Where("created_at < ?", cutoff).Delete(&model.AIGenerationLog{})
	return res.RowsAffected, res.Error
}

func (ds *AILogRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.AIGenerationLog{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
