package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// キャンセル理由の最低文字数
const minCancelReasonLen = 10

// CancellationUsecase は注文キャンセルの状態機械。
// cancelado へ行けるのは pendiente / confirmado からだけで、
// 確定から一定時間（既定10分）を過ぎたら自己キャンセルはできない
type CancellationUsecase struct {
	tx  repo.TransactionManager
	cfg config.Config
}

func NewCancellationUsecase(tx repo.TransactionManager, cfg config.Config) *CancellationUsecase {
	return &CancellationUsecase{tx: tx, cfg: cfg}
}

type RequestCancellationInput struct {
	OrderID int64
	Reason  string
}

type CancellationOutput struct {
	Cancellation model.CancellationRequest `json:"anulacion"`
	Refund       model.Refund              `json:"reembolso"`
}

type CanCancelOutput struct {
	CanCancel   bool   `json:"puede_anular"`
	Reason      string `json:"razon,omitempty"`
	MinutesLeft *int   `json:"tiempo_restante_minutos,omitempty"`
}

// RequestCancellation はキャンセル申請を作る。
// 申請作成・estado変更・返金レコード作成は1トランザクション。
// 在庫は戻さない（キャンセル時の再入荷は明示的な運用操作のみ）
func (u *CancellationUsecase) RequestCancellation(ctx context.Context, userID int64, in RequestCancellationInput) (CancellationOutput, error) {
	if userID <= 0 {
		return CancellationOutput{}, errUnauthorized()
	}
	if in.OrderID <= 0 {
		return CancellationOutput{}, errValidation("invalid pedido_id")
	}
	if len(strings.TrimSpace(in.Reason)) < minCancelReasonLen {
		return CancellationOutput{}, errValidation(
			fmt.Sprintf("motivo must be at least %d characters", minCancelReasonLen))
	}

	var out CancellationOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}
		//他人の注文は「存在しない扱い」にする
		if o.UserID != userID {
			return errNotFound()
		}

		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, CodeAlreadyCancelled, "el pedido ya está cancelado")
		}

		// 調理が始まったら自己キャンセル不可
		switch o.Status {
		case model.OrderStatusPreparing, model.OrderStatusShipped, model.OrderStatusDelivered:
			return NewHTTPError(http.StatusBadRequest, CodeTooLate,
				fmt.Sprintf("el pedido ya está en estado: %s", o.Status))
		}

		exists, err := r.Cancellations().ExistsByOrderID(ctx, o.ID)
		if err != nil {
			return errInternal()
		}
		if exists {
			return NewHTTPError(http.StatusBadRequest, CodeDuplicateRequest,
				"ya existe una solicitud de anulación para este pedido")
		}

		window := time.Duration(u.cfg.CancelWindowMinutes) * time.Minute
		if time.Since(o.CreatedAt) > window {
			return NewHTTPError(http.StatusBadRequest, CodeWindowExpired,
				fmt.Sprintf("el tiempo límite para anular ha expirado (%d minutos)", u.cfg.CancelWindowMinutes))
		}

		req, err := r.Cancellations().Create(ctx, model.CancellationRequest{
			OrderID:      o.ID,
			Reason:       in.Reason,
			Status:       model.CancellationStatusPending,
			RefundAmount: o.Total,
		})
		if err != nil {
			return errInternal()
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return errInternal()
		}

		method := o.PaymentMethod
		if method == "" {
			method = "transferencia"
		}

		refund, err := r.Refunds().Create(ctx, model.Refund{
			CancellationID: req.ID,
			Amount:         o.Total,
			PaymentMethod:  method,
			Status:         model.RefundStatusPending,
			// 決済側へ渡す参照番号
			TransactionID: uuid.NewString(),
		})
		if err != nil {
			return errInternal()
		}

		out = CancellationOutput{Cancellation: req, Refund: refund}
		return nil
	})

	if err != nil {
		return CancellationOutput{}, err
	}
	return out, nil
}

// CanCancel は読み取り専用の事前判定。
// 対象が本当に無いとき以外はエラーにせず、理由つきのfalseを返す
func (u *CancellationUsecase) CanCancel(ctx context.Context, userID int64, orderID int64) (CanCancelOutput, error) {
	if userID <= 0 {
		return CanCancelOutput{}, errUnauthorized()
	}
	if orderID <= 0 {
		return CanCancelOutput{}, errValidation("invalid id")
	}

	var out CanCancelOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}
		if o.UserID != userID {
			return errNotFound()
		}

		if o.Status == model.OrderStatusCancelled {
			out = CanCancelOutput{CanCancel: false, Reason: "el pedido ya está cancelado"}
			return nil
		}

		switch o.Status {
		case model.OrderStatusPreparing, model.OrderStatusShipped, model.OrderStatusDelivered:
			out = CanCancelOutput{CanCancel: false, Reason: fmt.Sprintf("el pedido ya está en estado: %s", o.Status)}
			return nil
		}

		window := time.Duration(u.cfg.CancelWindowMinutes) * time.Minute
		elapsed := time.Since(o.CreatedAt)
		if elapsed > window {
			out = CanCancelOutput{
				CanCancel: false,
				Reason:    fmt.Sprintf("el tiempo límite para anular ha expirado (%d minutos)", u.cfg.CancelWindowMinutes),
			}
			return nil
		}

		exists, err := r.Cancellations().ExistsByOrderID(ctx, o.ID)
		if err != nil {
			return errInternal()
		}
		if exists {
			out = CanCancelOutput{CanCancel: false, Reason: "ya existe una solicitud de anulación"}
			return nil
		}

		left := int((window - elapsed).Minutes())
		out = CanCancelOutput{CanCancel: true, MinutesLeft: &left}
		return nil
	})

	if err != nil {
		return CanCancelOutput{}, err
	}
	return out, nil
}

// GetCancellation は自分の注文のキャンセル申請を返す
func (u *CancellationUsecase) GetCancellation(ctx context.Context, userID int64, orderID int64) (model.CancellationRequest, error) {
	if userID <= 0 {
		return model.CancellationRequest{}, errUnauthorized()
	}
	if orderID <= 0 {
		return model.CancellationRequest{}, errValidation("invalid id")
	}

	var out model.CancellationRequest

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}
		if o.UserID != userID {
			return errNotFound()
		}

		req, err := r.Cancellations().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}

		out = req
		return nil
	})

	if err != nil {
		return model.CancellationRequest{}, err
	}
	return out, nil
}

// GetRefund は自分の注文の返金レコードを返す
func (u *CancellationUsecase) GetRefund(ctx context.Context, userID int64, orderID int64) (model.Refund, error) {
	if userID <= 0 {
		return model.Refund{}, errUnauthorized()
	}
	if orderID <= 0 {
		return model.Refund{}, errValidation("invalid id")
	}

	var out model.Refund

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}
		if o.UserID != userID {
			return errNotFound()
		}

		refund, err := r.Refunds().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errInternal()
		}

		out = refund
		return nil
	})

	if err != nil {
		return model.Refund{}, err
	}
	return out, nil
}
