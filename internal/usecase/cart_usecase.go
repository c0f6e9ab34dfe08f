package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /carrito の業務ロジック。
// 明細の単価は追加時点で確定し、以後は再計算しない
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	catalogRepo  repo.CatalogRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	catalogRepo repo.CatalogRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		catalogRepo:  catalogRepo,
	}
}

type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"producto_id"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Size      *model.Size     `json:"tamanio,omitempty"`
	Extras    []model.Extra   `json:"extras"`
	Quantity  int64           `json:"cantidad"`
	Notes     string          `json:"notas,omitempty"`
}

type CartResponse struct {
	ID    int64              `json:"id"`
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartItemInput struct {
	ProductID int64
	SizeID    *int64
	ExtraIDs  []int64
	Quantity  int64
	Notes     string
}

// GetCart はカート取得（無ければ作って空を返す）
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized()
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddItem はカートに明細を追加する。
// 単価 = 商品価格 + サイズ加算 + エキストラ合計（この時点で確定）
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if in.ProductID <= 0 {
		return CartResponse{}, errValidation("invalid producto_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, errValidation("invalid cantidad")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}

	// 商品チェック（activo・disponible・在庫）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeProductUnavailable, "producto no disponible")
	}
	if err != nil {
		return CartResponse{}, errInternal()
	}
	if !p.IsActive || !p.Available {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeProductUnavailable, "producto no disponible")
	}
	if p.Stock < in.Quantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
			fmt.Sprintf("stock insuficiente: quedan %d unidades", p.Stock))
	}

	unitPrice := p.Price

	// サイズチェック
	var sizeID *int64
	if in.SizeID != nil {
		s, err := u.catalogRepo.FindSizeByID(ctx, *in.SizeID)
		if err == repo.ErrNotFound {
			return CartResponse{}, errValidation("invalid tamanio_id")
		}
		if err != nil {
			return CartResponse{}, errInternal()
		}
		if !s.IsActive {
			return CartResponse{}, errValidation("invalid tamanio_id")
		}
		unitPrice = unitPrice.Add(s.PriceSurcharge)
		sizeID = in.SizeID
	}

	// エキストラチェック（1件でも無効なら弾く）
	var extras []model.Extra
	if len(in.ExtraIDs) > 0 {
		extras, err = u.catalogRepo.FindExtrasByIDs(ctx, in.ExtraIDs)
		if err != nil {
			return CartResponse{}, errInternal()
		}
		if len(extras) != len(in.ExtraIDs) {
			return CartResponse{}, errValidation("invalid extras_ids")
		}
		for _, ex := range extras {
			unitPrice = unitPrice.Add(ex.Price)
		}
	}

	item := model.CartItem{
		CartID:    cart.ID,
		ProductID: in.ProductID,
		SizeID:    sizeID,
		Quantity:  in.Quantity,
		UnitPrice: unitPrice,
		Notes:     in.Notes,
		Extras:    extras,
	}

	if _, err := u.cartItemRepo.Create(ctx, item); err != nil {
		return CartResponse{}, errInternal()
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（所有チェック＋在庫チェック）
func (u *CartUsecase) UpdateItemQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if cartItemID <= 0 {
		return CartResponse{}, errValidation("invalid id")
	}
	if qty < 1 {
		return CartResponse{}, errValidation("invalid cantidad")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}
	if !owned {
		return CartResponse{}, errNotFound()
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, errNotFound()
	}
	if err != nil {
		return CartResponse{}, errInternal()
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeProductUnavailable, "producto no disponible")
	}
	if err != nil {
		return CartResponse{}, errInternal()
	}
	if p.Stock < qty {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
			fmt.Sprintf("stock insuficiente: quedan %d unidades", p.Stock))
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, qty); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, errNotFound()
		}
		return CartResponse{}, errInternal()
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除（所有チェック）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if cartItemID <= 0 {
		return CartResponse{}, errValidation("invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}
	if !owned {
		return CartResponse{}, errNotFound()
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, errNotFound()
		}
		return CartResponse{}, errInternal()
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, errInternal()
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errUnauthorized()
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		// 無いなら空と同じ
		return nil
	}
	if err != nil {
		return errInternal()
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return errInternal()
	}
	return nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, errInternal()
	}

	outItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return CartResponse{}, errInternal()
		}

		var size *model.Size
		if it.SizeID != nil {
			s, err := u.catalogRepo.FindSizeByID(ctx, *it.SizeID)
			if err != nil && err != repo.ErrNotFound {
				return CartResponse{}, errInternal()
			}
			if err == nil {
				size = &s
			}
		}

		extras := it.Extras
		if extras == nil {
			extras = []model.Extra{}
		}

		outItems = append(outItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			UnitPrice: it.UnitPrice,
			Size:      size,
			Extras:    extras,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
		})

		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return CartResponse{
		ID:    cartID,
		Items: outItems,
		Total: total,
	}, nil
}
