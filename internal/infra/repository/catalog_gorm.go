package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// サイズ・エキストラのマスタ読み出し
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListSizes(ctx context.Context) ([]model.Size, error) {
	var sizes []model.Size
	if err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("id asc").
		Find(&sizes).Error; err != nil {
		return []model.Size{}, err
	}
	return sizes, nil
}

func (r *CatalogGormRepository) FindSizeByID(ctx context.Context, sizeID int64) (model.Size, error) {
	var s model.Size
	err := r.db.WithContext(ctx).Where("id = ?", sizeID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Size{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Size{}, err
	}
	return s, nil
}

func (r *CatalogGormRepository) ListExtras(ctx context.Context) ([]model.Extra, error) {
	var extras []model.Extra
	if err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("id asc").
		Find(&extras).Error; err != nil {
		return []model.Extra{}, err
	}
	return extras, nil
}

func (r *CatalogGormRepository) FindExtrasByIDs(ctx context.Context, extraIDs []int64) ([]model.Extra, error) {
	if len(extraIDs) == 0 {
		return []model.Extra{}, nil
	}

	var extras []model.Extra
	if err := r.db.WithContext(ctx).
		Where("id IN ?", extraIDs).
		Find(&extras).Error; err != nil {
		return []model.Extra{}, err
	}
	return extras, nil
}
