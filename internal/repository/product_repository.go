package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品一覧の絞り込み
type ProductListQuery struct {
	CategoryID *int64
	OnlyActive bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}

// サイズ・エキストラのマスタ取得
type CatalogRepository interface {
	ListSizes(ctx context.Context) ([]model.Size, error)
	FindSizeByID(ctx context.Context, sizeID int64) (model.Size, error)
	ListExtras(ctx context.Context) ([]model.Extra, error)
	FindExtrasByIDs(ctx context.Context, extraIDs []int64) ([]model.Extra, error)
}
