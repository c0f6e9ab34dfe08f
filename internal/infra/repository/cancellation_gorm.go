package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CancellationGormRepository struct {
	db *gorm.DB
}

func NewCancellationGormRepository(db *gorm.DB) *CancellationGormRepository {
	return &CancellationGormRepository{db: db}
}

func (r *CancellationGormRepository) Create(ctx context.Context, req model.CancellationRequest) (model.CancellationRequest, error) {
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return model.CancellationRequest{}, err
	}
	return req, nil
}

func (r *CancellationGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.CancellationRequest, error) {
	var req model.CancellationRequest
	err := r.db.WithContext(ctx).Where("pedido_id = ?", orderID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CancellationRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CancellationRequest{}, err
	}
	return req, nil
}

func (r *CancellationGormRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CancellationRequest{}).
		Where("pedido_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type RefundGormRepository struct {
	db *gorm.DB
}

func NewRefundGormRepository(db *gorm.DB) *RefundGormRepository {
	return &RefundGormRepository{db: db}
}

func (r *RefundGormRepository) Create(ctx context.Context, refund model.Refund) (model.Refund, error) {
	if err := r.db.WithContext(ctx).Create(&refund).Error; err != nil {
		return model.Refund{}, err
	}
	return refund, nil
}

func (r *RefundGormRepository) FindByCancellationID(ctx context.Context, cancellationID int64) (model.Refund, error) {
	var ref model.Refund
	err := r.db.WithContext(ctx).Where("anulacion_id = ?", cancellationID).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Refund{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Refund{}, err
	}
	return ref, nil
}

// 注文ID経由で返金を引く（anulacionをjoin）
func (r *RefundGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Refund, error) {
	var ref model.Refund
	err := r.db.WithContext(ctx).
		Joins("join solicitudes_anulacion on solicitudes_anulacion.id = reembolsos.anulacion_id").
		Where("solicitudes_anulacion.pedido_id = ?", orderID).
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Refund{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Refund{}, err
	}
	return ref, nil
}
