package report

import (
	"Recipe-Hub-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ReportRepository interface {
		CreateAndPrune(ctx context.Context, entry *entities.ReportEntry, keep int) error
		GetRecent(ctx context.Context, limit int) ([]*entities.ReportEntry, error)
		GetByID(ctx context.Context, id uint) (*entities.ReportEntry, error)
		Count(ctx context.Context) (int64, error)
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CreateAndPrune inserts the entry and deletes everything outside the `keep`
// newest rows in the same transaction, so the bound holds after every insert
// even under concurrent submitters. Newest is decided by id, which breaks
// timestamp ties at low clock resolution.
func (r *reportRepository) CreateAndPrune(ctx context.Context, entry *entities.ReportEntry, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		keepers := tx.Model(&entities.ReportEntry{}).
			Select("id").
			Order("id desc").
			Limit(keep)

		return tx.Where("id NOT IN (?)", keepers).
			Delete(&entities.ReportEntry{}).Error
	})
}

func (r *reportRepository) GetRecent(ctx context.Context, limit int) ([]*entities.ReportEntry, error) {
	var entries []*entities.ReportEntry
	if err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*entities.ReportEntry, error) {
	var entry entities.ReportEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.ReportEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
