package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/mailer"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

// EmailUsecase は注文確認メール。
// 記録は注文と1:1で、再送も同じ行を更新する。
// 実際のSMTP送信はレスポンス返却後のバックグラウンドで行う
type EmailUsecase struct {
	orderRepo repo.OrderRepository
	emailRepo repo.EmailConfirmationRepository
	userRepo  repo.UserRepository
	mailer    mailer.Mailer
	logger    *zap.Logger
}

func NewEmailUsecase(
	orderRepo repo.OrderRepository,
	emailRepo repo.EmailConfirmationRepository,
	userRepo repo.UserRepository,
	m mailer.Mailer,
	logger *zap.Logger,
) *EmailUsecase {
	return &EmailUsecase{
		orderRepo: orderRepo,
		emailRepo: emailRepo,
		userRepo:  userRepo,
		mailer:    m,
		logger:    logger,
	}
}

type SendConfirmationInput struct {
	OrderID int64
	To      string
}

// SendConfirmation は確認メールを送る。
// 記録が既にあればそれを使い、新しい行は作らない。
// 返すのは送信前の状態（送信結果は次回読み出しで見える）
func (u *EmailUsecase) SendConfirmation(ctx context.Context, in SendConfirmationInput) (model.EmailConfirmation, error) {
	if in.OrderID <= 0 {
		return model.EmailConfirmation{}, errValidation("invalid pedido_id")
	}

	o, err := u.orderRepo.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return model.EmailConfirmation{}, errNotFound()
	}
	if err != nil {
		return model.EmailConfirmation{}, errInternal()
	}

	rec, err := u.findOrCreateRecord(ctx, o, in.To)
	if err != nil {
		return model.EmailConfirmation{}, err
	}

	body, err := buildConfirmationBody(o)
	if err != nil {
		return model.EmailConfirmation{}, errInternal()
	}

	// レスポンスを待たせないよう送信はバックグラウンドで。
	// リクエストのctx/Txは持ち込まない
	go u.deliver(rec.ID, rec.To, rec.Subject, body)

	return rec, nil
}

// Resend は既存の記録を使った再送。本人かadministradorだけ
func (u *EmailUsecase) Resend(ctx context.Context, userID int64, role model.Role, orderID int64) (model.EmailConfirmation, error) {
	if userID <= 0 {
		return model.EmailConfirmation{}, errUnauthorized()
	}
	if orderID <= 0 {
		return model.EmailConfirmation{}, errValidation("invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.EmailConfirmation{}, errNotFound()
	}
	if err != nil {
		return model.EmailConfirmation{}, errInternal()
	}
	if role != model.RoleAdmin && o.UserID != userID {
		return model.EmailConfirmation{}, errNotFound()
	}

	rec, err := u.findOrCreateRecord(ctx, o, "")
	if err != nil {
		return model.EmailConfirmation{}, err
	}

	body, err := buildConfirmationBody(o)
	if err != nil {
		return model.EmailConfirmation{}, errInternal()
	}

	go u.deliver(rec.ID, rec.To, rec.Subject, body)

	return rec, nil
}

// 注文につき最大1行。toが空なら注文ユーザーのメールを使う
func (u *EmailUsecase) findOrCreateRecord(ctx context.Context, o model.Order, to string) (model.EmailConfirmation, error) {
	rec, err := u.emailRepo.FindByOrderID(ctx, o.ID)
	if err == nil {
		return rec, nil
	}
	if err != repo.ErrNotFound {
		return model.EmailConfirmation{}, errInternal()
	}

	if to == "" {
		user, err := u.userRepo.FindByID(ctx, o.UserID)
		if err != nil {
			return model.EmailConfirmation{}, errInternal()
		}
		to = user.Email
	}

	created, err := u.emailRepo.Create(ctx, model.EmailConfirmation{
		OrderID: o.ID,
		To:      to,
		Subject: fmt.Sprintf("Confirmación de pedido #%d - Pizzería La Fornace", o.ID),
		Sent:    false,
	})
	if err != nil {
		return model.EmailConfirmation{}, errInternal()
	}
	return created, nil
}

// バックグラウンド送信。結果はメール記録の行に残すだけで、
// 自動リトライはしない（再送はユーザー操作）
func (u *EmailUsecase) deliver(recID int64, to, subject, body string) {
	ctx := context.Background()

	if err := u.mailer.Send(to, subject, body); err != nil {
		u.logger.Error("confirmation email failed",
			zap.Int64("email_id", recID),
			zap.String("to", to),
			zap.Error(err))

		if dbErr := u.emailRepo.RecordFailure(ctx, recID, err.Error()); dbErr != nil {
			u.logger.Error("failed to record email failure",
				zap.Int64("email_id", recID),
				zap.Error(dbErr))
		}
		return
	}

	if err := u.emailRepo.MarkSent(ctx, recID, time.Now()); err != nil {
		u.logger.Error("failed to mark email sent",
			zap.Int64("email_id", recID),
			zap.Error(err))
		return
	}

	u.logger.Info("confirmation email sent",
		zap.Int64("email_id", recID),
		zap.String("to", to))
}

// 確認メールの本文（HTML）
func buildConfirmationBody(o model.Order) (string, error) {
	snap, err := o.Snapshot()
	if err != nil {
		return "", err
	}

	eta := 45
	if o.ETAMinutes != nil {
		eta = *o.ETAMinutes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Pizzería La Fornace</h1>")
	fmt.Fprintf(&b, "<p>Tu pedido #%d fue confirmado.</p>", o.ID)
	b.WriteString("<ul>")
	for _, it := range snap.Items {
		fmt.Fprintf(&b, "<li>%d x %s — $%s</li>", it.Quantity, it.Name, it.UnitPrice.StringFixed(2))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total: $%s</p>", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "<p>Dirección: %s</p>", o.Address)
	fmt.Fprintf(&b, "<p>Tiempo estimado de entrega: %d minutos</p>", eta)

	return b.String(), nil
}
