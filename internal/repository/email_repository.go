package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type EmailConfirmationRepository interface {
	Create(ctx context.Context, rec model.EmailConfirmation) (model.EmailConfirmation, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.EmailConfirmation, error)
	// 送信成功
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	// 送信失敗。reintentos+1してエラー文言を残す
	RecordFailure(ctx context.Context, id int64, errMsg string) error
}
