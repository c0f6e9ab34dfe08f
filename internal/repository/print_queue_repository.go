package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type PrintQueueRepository interface {
	Create(ctx context.Context, job model.PrintJob) (model.PrintJob, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.PrintJob, error)
	// エンキュー順の一覧。statusが空なら全件
	List(ctx context.Context, status model.PrintJobStatus) ([]model.PrintJob, error)
	// impresoへ。繰り返し呼ばれたら印刷時刻だけ更新される
	MarkPrinted(ctx context.Context, jobID int64, printedAt time.Time) error
	// pendienteに戻してreintentos+1
	ResetForReprint(ctx context.Context, jobID int64) error
}
