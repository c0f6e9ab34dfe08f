package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type EmailGormRepository struct {
	db *gorm.DB
}

func NewEmailGormRepository(db *gorm.DB) *EmailGormRepository {
	return &EmailGormRepository{db: db}
}

func (r *EmailGormRepository) Create(ctx context.Context, rec model.EmailConfirmation) (model.EmailConfirmation, error) {
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.EmailConfirmation{}, err
	}
	return rec, nil
}

func (r *EmailGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.EmailConfirmation, error) {
	var rec model.EmailConfirmation
	err := r.db.WithContext(ctx).Where("pedido_id = ?", orderID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.EmailConfirmation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.EmailConfirmation{}, err
	}
	return rec, nil
}

func (r *EmailGormRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.EmailConfirmation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"enviado":       true,
			"fecha_envio":   sentAt,
			"error_mensaje": "",
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EmailGormRepository) RecordFailure(ctx context.Context, id int64, errMsg string) error {
	res := r.db.WithContext(ctx).
		Model(&model.EmailConfirmation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reintentos":    gorm.Expr("reintentos + 1"),
			"error_mensaje": errMsg,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
