package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// PrintQueueUsecase はキッチン向け印刷キューの操作。
// キューは注文と1:1のDB行で、本物のメッセージブローカーではない
type PrintQueueUsecase struct {
	tx repo.TransactionManager
}

func NewPrintQueueUsecase(tx repo.TransactionManager) *PrintQueueUsecase {
	return &PrintQueueUsecase{tx: tx}
}

// ListQueue はエンキュー順の一覧（estadoで絞り込み可）
func (u *PrintQueueUsecase) ListQueue(ctx context.Context, status string) ([]model.PrintJob, error) {
	switch status {
	case "", string(model.PrintJobStatusPending), string(model.PrintJobStatusPrinted), string(model.PrintJobStatusError):
	default:
		return []model.PrintJob{}, errValidation("invalid estado")
	}

	var jobs []model.PrintJob

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		jobs, err = r.PrintQueue().List(ctx, model.PrintJobStatus(status))
		if err != nil {
			return errInternal()
		}
		return nil
	})

	if err != nil {
		return []model.PrintJob{}, err
	}
	return jobs, nil
}

// MarkPrinted は印刷完了の確認操作。
// このときだけ、注文を pendiente → preparando へ進める。
// 2回目以降の呼び出しは印刷時刻の更新だけで済む
func (u *PrintQueueUsecase) MarkPrinted(ctx context.Context, orderID int64) (model.PrintJob, error) {
	if orderID <= 0 {
		return model.PrintJob{}, errValidation("invalid id")
	}

	var out model.PrintJob

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.PrintQueue().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}

		now := time.Now()
		if err := r.PrintQueue().MarkPrinted(ctx, job.ID, now); err != nil {
			return errInternal()
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil && err != repo.ErrNotFound {
			return errInternal()
		}
		if err == nil && o.Status == model.OrderStatusPending {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusPreparing); err != nil {
				return errInternal()
			}
		}

		job.Status = model.PrintJobStatusPrinted
		job.PrintedAt = &now
		out = job
		return nil
	})

	if err != nil {
		return model.PrintJob{}, err
	}
	return out, nil
}

// Reprint は再印刷の依頼。pendienteに戻してreintentosを増やす
func (u *PrintQueueUsecase) Reprint(ctx context.Context, orderID int64) (model.PrintJob, error) {
	if orderID <= 0 {
		return model.PrintJob{}, errValidation("invalid id")
	}

	var out model.PrintJob

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.PrintQueue().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}

		if err := r.PrintQueue().ResetForReprint(ctx, job.ID); err != nil {
			return errInternal()
		}

		job.Status = model.PrintJobStatusPending
		job.Retries++
		out = job
		return nil
	})

	if err != nil {
		return model.PrintJob{}, err
	}
	return out, nil
}
