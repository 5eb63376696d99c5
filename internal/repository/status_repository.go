package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-board/internal/model"
)

// StatusRepository manages the status palette.
type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) List(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

func (r *StatusRepository) FindByName(ctx context.Context, name string) (*model.Status, error) {
	var status model.Status
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return nil, wrapNotFound("find status", err)
	}
	return &status, nil
}

func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return fmt.Errorf("create status: %w", err)
	}
	return nil
}

// Update overwrites every editable field of the status with the given ID.
func (r *StatusRepository) Update(ctx context.Context, status *model.Status) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Status{}).Where("id = ?", status.ID).Updates(map[string]interface{}{
		"name":     status.Name,
		"color":    status.Color,
		"hex":      status.Hex,
		"category": status.Category,
	})
	if res.Error != nil {
		return fmt.Errorf("update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update status %d: %w", status.ID, ErrNotFound)
	}
	return db.First(status, status.ID).Error
}

func (r *StatusRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Status{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete status %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *StatusRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Status{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count statuses: %w", err)
	}
	return n, nil
}
