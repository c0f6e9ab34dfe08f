package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PrintQueueGormRepository struct {
	db *gorm.DB
}

func NewPrintQueueGormRepository(db *gorm.DB) *PrintQueueGormRepository {
	return &PrintQueueGormRepository{db: db}
}

func (r *PrintQueueGormRepository) Create(ctx context.Context, job model.PrintJob) (model.PrintJob, error) {
	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return model.PrintJob{}, err
	}
	return job, nil
}

func (r *PrintQueueGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.PrintJob, error) {
	var job model.PrintJob
	err := r.db.WithContext(ctx).Where("pedido_id = ?", orderID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PrintJob{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PrintJob{}, err
	}
	return job, nil
}

// 送信順（エンキュー順）で返す
func (r *PrintQueueGormRepository) List(ctx context.Context, status model.PrintJobStatus) ([]model.PrintJob, error) {
	q := r.db.WithContext(ctx).Model(&model.PrintJob{})
	if status != "" {
		q = q.Where("estado = ?", status)
	}

	var jobs []model.PrintJob
	if err := q.Order("fecha_envio_cocina asc").Find(&jobs).Error; err != nil {
		return []model.PrintJob{}, err
	}
	return jobs, nil
}

func (r *PrintQueueGormRepository) MarkPrinted(ctx context.Context, jobID int64, printedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.PrintJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"estado":          model.PrintJobStatusPrinted,
			"fecha_impresion": printedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PrintQueueGormRepository) ResetForReprint(ctx context.Context, jobID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.PrintJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"estado":     model.PrintJobStatusPending,
			"reintentos": gorm.Expr("reintentos + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
