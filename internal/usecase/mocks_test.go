package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) ListSizes(ctx context.Context) ([]model.Size, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Size)
	return items, args.Error(1)
}

func (m *CatalogRepoMock) FindSizeByID(ctx context.Context, sizeID int64) (model.Size, error) {
	args := m.Called(ctx, sizeID)
	s, _ := args.Get(0).(model.Size)
	return s, args.Error(1)
}

func (m *CatalogRepoMock) ListExtras(ctx context.Context) ([]model.Extra, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Extra)
	return items, args.Error(1)
}

func (m *CatalogRepoMock) FindExtrasByIDs(ctx context.Context, extraIDs []int64) ([]model.Extra, error) {
	args := m.Called(ctx, extraIDs)
	items, _ := args.Get(0).([]model.Extra)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) MarkUnavailableIfOut(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type CancellationRepoMock struct{ mock.Mock }

func (m *CancellationRepoMock) Create(ctx context.Context, req model.CancellationRequest) (model.CancellationRequest, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(model.CancellationRequest)
	return created, args.Error(1)
}

func (m *CancellationRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.CancellationRequest, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(model.CancellationRequest)
	return r, args.Error(1)
}

func (m *CancellationRepoMock) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type RefundRepoMock struct{ mock.Mock }

func (m *RefundRepoMock) Create(ctx context.Context, refund model.Refund) (model.Refund, error) {
	args := m.Called(ctx, refund)
	created, _ := args.Get(0).(model.Refund)
	return created, args.Error(1)
}

func (m *RefundRepoMock) FindByCancellationID(ctx context.Context, cancellationID int64) (model.Refund, error) {
	args := m.Called(ctx, cancellationID)
	r, _ := args.Get(0).(model.Refund)
	return r, args.Error(1)
}

func (m *RefundRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Refund, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(model.Refund)
	return r, args.Error(1)
}

type PrintQueueRepoMock struct{ mock.Mock }

func (m *PrintQueueRepoMock) Create(ctx context.Context, job model.PrintJob) (model.PrintJob, error) {
	args := m.Called(ctx, job)
	created, _ := args.Get(0).(model.PrintJob)
	return created, args.Error(1)
}

func (m *PrintQueueRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.PrintJob, error) {
	args := m.Called(ctx, orderID)
	j, _ := args.Get(0).(model.PrintJob)
	return j, args.Error(1)
}

func (m *PrintQueueRepoMock) List(ctx context.Context, status model.PrintJobStatus) ([]model.PrintJob, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]model.PrintJob)
	return items, args.Error(1)
}

func (m *PrintQueueRepoMock) MarkPrinted(ctx context.Context, jobID int64, printedAt time.Time) error {
	args := m.Called(ctx, jobID, printedAt)
	return args.Error(0)
}

func (m *PrintQueueRepoMock) ResetForReprint(ctx context.Context, jobID int64) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

type EmailRepoMock struct{ mock.Mock }

func (m *EmailRepoMock) Create(ctx context.Context, rec model.EmailConfirmation) (model.EmailConfirmation, error) {
	args := m.Called(ctx, rec)
	created, _ := args.Get(0).(model.EmailConfirmation)
	return created, args.Error(1)
}

func (m *EmailRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.EmailConfirmation, error) {
	args := m.Called(ctx, orderID)
	rec, _ := args.Get(0).(model.EmailConfirmation)
	return rec, args.Error(1)
}

func (m *EmailRepoMock) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *EmailRepoMock) RecordFailure(ctx context.Context, id int64, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

// =====================
// Txのスタブ
// =====================

// 全repoを束ねてTxReposとして渡すだけのスタブ。
// WithinTxはfnをそのまま実行する（commit/rollbackの模倣はしない）
type txReposStub struct {
	orders        *OrderRepoMock
	carts         *CartRepoMock
	cartItems     *CartItemRepoMock
	products      *ProductRepoMock
	inventory     *InventoryRepoMock
	cancellations *CancellationRepoMock
	refunds       *RefundRepoMock
	printQueue    *PrintQueueRepoMock
	emails        *EmailRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:        new(OrderRepoMock),
		carts:         new(CartRepoMock),
		cartItems:     new(CartItemRepoMock),
		products:      new(ProductRepoMock),
		inventory:     new(InventoryRepoMock),
		cancellations: new(CancellationRepoMock),
		refunds:       new(RefundRepoMock),
		printQueue:    new(PrintQueueRepoMock),
		emails:        new(EmailRepoMock),
	}
}

func (s *txReposStub) Orders() repo.OrderRepository               { return s.orders }
func (s *txReposStub) Carts() repo.CartRepository                 { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository         { return s.cartItems }
func (s *txReposStub) Products() repo.ProductRepository           { return s.products }
func (s *txReposStub) Inventory() repo.InventoryRepository        { return s.inventory }
func (s *txReposStub) Cancellations() repo.CancellationRepository { return s.cancellations }
func (s *txReposStub) Refunds() repo.RefundRepository             { return s.refunds }
func (s *txReposStub) PrintQueue() repo.PrintQueueRepository      { return s.printQueue }
func (s *txReposStub) Emails() repo.EmailConfirmationRepository   { return s.emails }

type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// helpers
// =====================

func testConfig() config.Config {
	return config.Config{
		JWTSecret:           "test-secret",
		PizzeriaLat:         -33.4489,
		PizzeriaLon:         -70.6693,
		CoverageRadiusKM:    15,
		ETABaseMinutes:      25,
		ETAMinutesPerKM:     3,
		ShippingFee:         decimal.NewFromInt(2000),
		TaxRate:             decimal.RequireFromString("0.19"),
		CancelWindowMinutes: 10,
	}
}

func assertHTTPCode(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, wantStatus, he.Status)
	assert.Equal(t, wantCode, he.Code)
}
