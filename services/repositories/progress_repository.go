package repositories

import (
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/progress"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository stores one UserProgress row per user.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) GetByUserID(userID string) (*model.UserProgress, error) {
	var p model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateIfAbsent inserts r unless a row for the user exists, then returns
// the stored row. Concurrent callers converge on the same row.
func (ds *ProgressRepository) CreateIfAbsent(r *progress.Record) (*model.UserProgress, error) {
	row := model.NewUserProgress(newID(), r)
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return ds.GetByUserID(r.UserID)
}

// UpdateVersioned writes r only if the stored version still equals
// r.Version, bumping it on success. A false result with a nil error means
// another writer got there first.
func (ds *ProgressRepository) UpdateVersioned(r *progress.Record) (bool, error) {
	updates := model.ProgressUpdates(r)
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = time.Now()

	res := ds.db.Model(&model.UserProgress{}).
		Where("user_id = ? AND version = ?", r.UserID, r.Version).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (ds *ProgressRepository) ListByUserIDs(userIDs []string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	if len(userIDs) == 0 {
		return rows, nil
	}
	if err := ds.db.Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActiveSince counts learners with a completion at or after since.
func (ds *ProgressRepository) CountActiveSince(since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.UserProgress{}).
		Where("last_activity_at >= ?", since).
		Count(&count).Error
	return count, err
}
