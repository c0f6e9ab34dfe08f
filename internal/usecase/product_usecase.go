package usecase

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ProductUsecase はカタログ閲覧と管理者の在庫調整
type ProductUsecase struct {
	productRepo   repo.ProductRepository
	catalogRepo   repo.CatalogRepository
	inventoryRepo repo.InventoryRepository
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	catalogRepo repo.CatalogRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
	}
}

// List は公開カタログ。activoな商品のみ
func (u *ProductUsecase) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx, repo.ProductListQuery{
		CategoryID: categoryID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, errInternal()
	}
	return products, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, errValidation("invalid id")
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, errNotFound()
	}
	if err != nil {
		return model.Product{}, errInternal()
	}
	if !p.IsActive {
		return model.Product{}, errNotFound()
	}
	return p, nil
}

func (u *ProductUsecase) ListSizes(ctx context.Context) ([]model.Size, error) {
	sizes, err := u.catalogRepo.ListSizes(ctx)
	if err != nil {
		return nil, errInternal()
	}
	return sizes, nil
}

func (u *ProductUsecase) ListExtras(ctx context.Context) ([]model.Extra, error) {
	extras, err := u.catalogRepo.ListExtras(ctx)
	if err != nil {
		return nil, errInternal()
	}
	return extras, nil
}

// SetStock は管理者の在庫直接設定。disponibleも連動する
func (u *ProductUsecase) SetStock(ctx context.Context, productID int64, newStock int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, errValidation("invalid id")
	}
	if newStock < 0 {
		return model.Product{}, errValidation("el stock no puede ser negativo")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, errNotFound()
		}
		return model.Product{}, errInternal()
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		return model.Product{}, errInternal()
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, errInternal()
	}
	return p, nil
}
