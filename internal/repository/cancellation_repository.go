package repository

import (
	"context"

	"app/internal/domain/model"
)

type CancellationRepository interface {
	Create(ctx context.Context, req model.CancellationRequest) (model.CancellationRequest, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.CancellationRequest, error)
	// 申請が既にあるかどうか（重複防止の存在チェック）
	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
}

type RefundRepository interface {
	Create(ctx context.Context, refund model.Refund) (model.Refund, error)
	FindByCancellationID(ctx context.Context, cancellationID int64) (model.Refund, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Refund, error)
}
