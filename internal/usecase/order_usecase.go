package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/geo"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase は注文確定（カート→検証→配達圏→スナップショット→在庫減算→副作用キュー）
// と注文履歴の業務ロジック
type OrderUsecase struct {
	tx       repo.TransactionManager
	userRepo repo.UserRepository
	cfg      config.Config
}

func NewOrderUsecase(tx repo.TransactionManager, userRepo repo.UserRepository, cfg config.Config) *OrderUsecase {
	return &OrderUsecase{tx: tx, userRepo: userRepo, cfg: cfg}
}

type ConfirmOrderInput struct {
	Address       string
	Phone         string
	Instructions  string
	Latitude      *float64
	Longitude     *float64
	PaymentMethod string
}

type CostBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"costo_envio"`
	Taxes       decimal.Decimal `json:"impuestos"`
	Discount    decimal.Decimal `json:"descuento"`
	Total       decimal.Decimal `json:"total"`
}

type OrderOutput struct {
	model.Order
	Items []model.OrderItemSnapshot `json:"items"`
}

type OrderListOutput struct {
	Items    []OrderOutput `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type ValidateAddressOutput struct {
	Valid      bool            `json:"valida"`
	DistanceKM decimal.Decimal `json:"distancia_km"`
	ETAMinutes *int            `json:"eta_minutos,omitempty"`
	Message    string          `json:"mensaje"`
}

type OrderSummaryOutput struct {
	Items      []model.OrderItemSnapshot `json:"items"`
	Costs      CostBreakdown             `json:"costos"`
	ETAMinutes *int                      `json:"eta_minutos"`
}

// ConfirmOrder はカートから注文を確定する。
// 全ステップが1トランザクション。途中で失敗したら在庫もキューも一切残らない
func (u *OrderUsecase) ConfirmOrder(ctx context.Context, userID int64, in ConfirmOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if strings.TrimSpace(in.Address) == "" {
		return OrderOutput{}, errValidation("direccion is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return OrderOutput{}, errValidation("telefono is required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return OrderOutput{}, errValidation("latitud and longitud must be sent together")
	}

	// メール記録の宛先は確定時点のユーザーのメール
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, errUnauthorized()
	}
	if err != nil {
		return OrderOutput{}, errInternal()
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カート取得
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, CodeEmptyCart, "el carrito está vacío")
		}
		if err != nil {
			return errInternal()
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return errInternal()
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, CodeEmptyCart, "el carrito está vacío")
		}

		// 確定時点の商品状態を再チェックしてスナップショットを作る。
		// カート投入後に在庫が変わっていても、ここで必ず拾う
		snapshot := make([]model.OrderItemSnapshot, 0, len(cartItems))
		subtotal := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, CodeProductUnavailable, "producto ya no disponible")
			}
			if err != nil {
				return errInternal()
			}
			if !p.IsActive || !p.Available {
				return NewHTTPError(http.StatusBadRequest, CodeProductUnavailable,
					fmt.Sprintf("el producto %s ya no está disponible", p.Name))
			}
			if p.Stock < ci.Quantity {
				return NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
					fmt.Sprintf("stock insuficiente para %s: quedan %d unidades", p.Name, p.Stock))
			}

			// 単価はカート追加時点のスナップショットを使う
			snapshot = append(snapshot, model.OrderItemSnapshot{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  ci.Quantity,
				UnitPrice: ci.UnitPrice,
				Notes:     ci.Notes,
			})
			subtotal = subtotal.Add(ci.UnitPrice.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		costs := u.computeCosts(subtotal)

		// 配達圏チェックとETA（座標があるときだけ）
		var etaMinutes *int
		var lat, lon *decimal.Decimal
		if in.Latitude != nil && in.Longitude != nil {
			dist := geo.DistanceKM(u.cfg.PizzeriaLat, u.cfg.PizzeriaLon, *in.Latitude, *in.Longitude)
			if dist > u.cfg.CoverageRadiusKM {
				return NewHTTPError(http.StatusBadRequest, CodeOutOfCoverage,
					fmt.Sprintf("la dirección está fuera del radio de cobertura (%.0f km): %.2f km",
						u.cfg.CoverageRadiusKM, dist))
			}
			eta := geo.ETAMinutes(dist, u.cfg.ETABaseMinutes, u.cfg.ETAMinutesPerKM)
			etaMinutes = &eta

			dLat := decimal.NewFromFloat(*in.Latitude)
			dLon := decimal.NewFromFloat(*in.Longitude)
			lat, lon = &dLat, &dLon
		}

		snapshotJSON, err := json.Marshal(model.OrderSnapshot{Items: snapshot})
		if err != nil {
			return errInternal()
		}

		// 注文作成
		created, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			Status:        model.OrderStatusPending,
			Subtotal:      costs.Subtotal,
			ShippingFee:   costs.ShippingFee,
			Taxes:         costs.Taxes,
			Discount:      costs.Discount,
			Total:         costs.Total,
			Address:       in.Address,
			Phone:         in.Phone,
			Instructions:  in.Instructions,
			Latitude:      lat,
			Longitude:     lon,
			ETAMinutes:    etaMinutes,
			ItemsJSON:     string(snapshotJSON),
			PaymentMethod: in.PaymentMethod,
		})
		if err != nil {
			return errInternal()
		}

		// 在庫減算。条件付きUPDATEが0行なら同時確定に負けたということなので
		// insufficient_stockで全体をロールバックする
		for _, ci := range cartItems {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return errInternal()
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
					"stock insuficiente")
			}
			if err := r.Inventory().MarkUnavailableIfOut(ctx, ci.ProductID); err != nil {
				return errInternal()
			}
		}

		// 副作用キュー（印刷・確認メール）を同じTxで積む
		if _, err := r.PrintQueue().Create(ctx, model.PrintJob{
			OrderID: created.ID,
			Status:  model.PrintJobStatusPending,
		}); err != nil {
			return errInternal()
		}

		if _, err := r.Emails().Create(ctx, model.EmailConfirmation{
			OrderID: created.ID,
			To:      user.Email,
			Subject: fmt.Sprintf("Confirmación de pedido #%d - Pizzería La Fornace", created.ID),
			Sent:    false,
		}); err != nil {
			return errInternal()
		}

		// カートを空にする
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return errInternal()
		}

		out = OrderOutput{Order: created, Items: snapshot}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ValidateDeliveryAddress は配達圏の事前チェック。状態は一切変えない
func (u *OrderUsecase) ValidateDeliveryAddress(lat, lon float64) ValidateAddressOutput {
	dist := geo.DistanceKM(u.cfg.PizzeriaLat, u.cfg.PizzeriaLon, lat, lon)
	distDec := decimal.NewFromFloat(dist).Round(2)

	if dist > u.cfg.CoverageRadiusKM {
		return ValidateAddressOutput{
			Valid:      false,
			DistanceKM: distDec,
			Message: fmt.Sprintf("la dirección está fuera del radio de cobertura (%.0f km), distancia: %.2f km",
				u.cfg.CoverageRadiusKM, dist),
		}
	}

	eta := geo.ETAMinutes(dist, u.cfg.ETABaseMinutes, u.cfg.ETAMinutesPerKM)
	return ValidateAddressOutput{
		Valid:      true,
		DistanceKM: distDec,
		ETAMinutes: &eta,
		Message:    fmt.Sprintf("dirección válida, tiempo estimado de entrega: %d minutos", eta),
	}
}

// GetOrderSummary は確定前のプレビュー（明細＋費用内訳）。
// ETAは住所検証側で出すのでここでは返さない
func (u *OrderUsecase) GetOrderSummary(ctx context.Context, userID int64) (OrderSummaryOutput, error) {
	if userID <= 0 {
		return OrderSummaryOutput{}, errUnauthorized()
	}

	var out OrderSummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, CodeEmptyCart, "el carrito está vacío")
		}
		if err != nil {
			return errInternal()
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return errInternal()
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, CodeEmptyCart, "el carrito está vacío")
		}

		items := make([]model.OrderItemSnapshot, 0, len(cartItems))
		subtotal := decimal.Zero
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err != nil && err != repo.ErrNotFound {
				return errInternal()
			}
			items = append(items, model.OrderItemSnapshot{
				ProductID: ci.ProductID,
				Name:      p.Name,
				Quantity:  ci.Quantity,
				UnitPrice: ci.UnitPrice,
				Notes:     ci.Notes,
			})
			subtotal = subtotal.Add(ci.UnitPrice.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		out = OrderSummaryOutput{
			Items: items,
			Costs: u.computeCosts(subtotal),
		}
		return nil
	})

	if err != nil {
		return OrderSummaryOutput{}, err
	}
	return out, nil
}

// ListMyOrders は自分の注文履歴（新しい順、estado・期間で絞り込み可）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, f repo.OrderListFilter) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, errUnauthorized()
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		return OrderListOutput{}, errValidation("invalid page_size")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, f)
		if err != nil {
			return errInternal()
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			oo, err := toOrderOutput(o)
			if err != nil {
				return errInternal()
			}
			items = append(items, oo)
		}

		out = OrderListOutput{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, errValidation("invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
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

		out, err = toOrderOutput(o)
		if err != nil {
			return errInternal()
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 費用内訳。total = subtotal + envio + impuestos - descuento
func (u *OrderUsecase) computeCosts(subtotal decimal.Decimal) CostBreakdown {
	shipping := u.cfg.ShippingFee
	taxes := subtotal.Mul(u.cfg.TaxRate).Round(2)
	discount := decimal.Zero

	return CostBreakdown{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Taxes:       taxes,
		Discount:    discount,
		Total:       subtotal.Add(shipping).Add(taxes).Sub(discount),
	}
}

func toOrderOutput(o model.Order) (OrderOutput, error) {
	snap, err := o.Snapshot()
	if err != nil {
		return OrderOutput{}, err
	}
	return OrderOutput{Order: o, Items: snap.Items}, nil
}
