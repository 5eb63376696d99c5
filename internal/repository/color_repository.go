package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"task-board/internal/model"
)

// ColorRepository manages the colors offered when editing statuses.
type ColorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) *ColorRepository {
	return &ColorRepository{db: db}
}

func (r *ColorRepository) List(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	return colors, nil
}

// FindByHex matches case-insensitively; the first color by ID wins.
func (r *ColorRepository) FindByHex(ctx context.Context, hex string) (*model.Color, error) {
	var color model.Color
	if err := r.db.WithContext(ctx).
		Where("LOWER(hex) = ?", strings.ToLower(hex)).
		Order("id ASC").
		First(&color).Error; err != nil {
		return nil, wrapNotFound("find color", err)
	}
	return &color, nil
}

func (r *ColorRepository) Create(ctx context.Context, color *model.Color) error {
	if err := r.db.WithContext(ctx).Create(color).Error; err != nil {
		return fmt.Errorf("create color: %w", err)
	}
	return nil
}

func (r *ColorRepository) Update(ctx context.Context, color *model.Color) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Color{}).Where("id = ?", color.ID).Updates(map[string]interface{}{
		"name":           color.Name,
		"hex":            color.Hex,
		"tailwind_class": color.TailwindClass,
	})
	if res.Error != nil {
		return fmt.Errorf("update color: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update color %d: %w", color.ID, ErrNotFound)
	}
	return db.First(color, color.ID).Error
}

func (r *ColorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Color{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete color: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete color %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *ColorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Color{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count colors: %w", err)
	}
	return n, nil
}
