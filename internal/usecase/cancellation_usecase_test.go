package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCancellationUsecase(repos *txReposStub) *usecase.CancellationUsecase {
	return usecase.NewCancellationUsecase(&txManagerStub{repos: repos}, testConfig())
}

const validReason = "pedí la pizza equivocada"

func TestCancellationUsecase_RequestCancellation_Success(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	total := decimal.NewFromInt(21040)
	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPending,
		Total: total, PaymentMethod: "tarjeta",
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}, nil)
	repos.cancellations.On("ExistsByOrderID", mock.Anything, int64(10)).Return(false, nil)

	repos.cancellations.On("Create", mock.Anything, mock.MatchedBy(func(r model.CancellationRequest) bool {
		return r.OrderID == 10 &&
			r.Status == model.CancellationStatusPending &&
			r.RefundAmount.Equal(total)
	})).Return(model.CancellationRequest{ID: 3, OrderID: 10, RefundAmount: total}, nil)

	repos.orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).Return(nil)

	repos.refunds.On("Create", mock.Anything, mock.MatchedBy(func(r model.Refund) bool {
		return r.CancellationID == 3 &&
			r.Amount.Equal(total) &&
			r.PaymentMethod == "tarjeta" &&
			r.Status == model.RefundStatusPending &&
			r.TransactionID != ""
	})).Return(model.Refund{ID: 4, CancellationID: 3}, nil)

	out, err := uc.RequestCancellation(ctx, 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Cancellation.ID)
	assert.Equal(t, int64(4), out.Refund.ID)

	repos.orders.AssertExpectations(t)
	repos.cancellations.AssertExpectations(t)
	repos.refunds.AssertExpectations(t)
}

func TestCancellationUsecase_RequestCancellation_DefaultsRefundMethod(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusConfirmed,
		Total: decimal.NewFromInt(5000), CreatedAt: time.Now(),
	}, nil)
	repos.cancellations.On("ExistsByOrderID", mock.Anything, int64(10)).Return(false, nil)
	repos.cancellations.On("Create", mock.Anything, mock.Anything).
		Return(model.CancellationRequest{ID: 3}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).Return(nil)
	repos.refunds.On("Create", mock.Anything, mock.MatchedBy(func(r model.Refund) bool {
		return r.PaymentMethod == "transferencia"
	})).Return(model.Refund{ID: 4}, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assert.NoError(t, err)
	repos.refunds.AssertExpectations(t)
}

func TestCancellationUsecase_RequestCancellation_ReasonTooShort(t *testing.T) {
	uc := newCancellationUsecase(newTxReposStub())

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: "corta",
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestCancellationUsecase_RequestCancellation_OtherUsersOrderIsNotFound(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 999, Status: model.OrderStatusPending, CreatedAt: time.Now(),
	}, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assertHTTPCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

func TestCancellationUsecase_RequestCancellation_AlreadyCancelled(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusCancelled, CreatedAt: time.Now(),
	}, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeAlreadyCancelled)
}

func TestCancellationUsecase_RequestCancellation_TooLateWhenPreparing(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPreparing, CreatedAt: time.Now(),
	}, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeTooLate)
}

func TestCancellationUsecase_RequestCancellation_DuplicateRequest(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPending, CreatedAt: time.Now(),
	}, nil)
	repos.cancellations.On("ExistsByOrderID", mock.Anything, int64(10)).Return(true, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeDuplicateRequest)
}

func TestCancellationUsecase_RequestCancellation_WindowExpired(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPending,
		CreatedAt: time.Now().Add(-11 * time.Minute),
	}, nil)
	repos.cancellations.On("ExistsByOrderID", mock.Anything, int64(10)).Return(false, nil)

	_, err := uc.RequestCancellation(context.Background(), 1, usecase.RequestCancellationInput{
		OrderID: 10, Reason: validReason,
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeWindowExpired)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// CanCancel
// =====================

func TestCancellationUsecase_CanCancel_EligibleWithMinutesLeft(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPending,
		CreatedAt: time.Now().Add(-3 * time.Minute),
	}, nil)
	repos.cancellations.On("ExistsByOrderID", mock.Anything, int64(10)).Return(false, nil)

	out, err := uc.CanCancel(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.True(t, out.CanCancel)
	if assert.NotNil(t, out.MinutesLeft) {
		assert.GreaterOrEqual(t, *out.MinutesLeft, 6)
		assert.LessOrEqual(t, *out.MinutesLeft, 7)
	}
}

func TestCancellationUsecase_CanCancel_FalseWithReasonWhenExpired(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusPending,
		CreatedAt: time.Now().Add(-30 * time.Minute),
	}, nil)

	out, err := uc.CanCancel(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.False(t, out.CanCancel)
	assert.NotEmpty(t, out.Reason)
	assert.Nil(t, out.MinutesLeft)
}

func TestCancellationUsecase_CanCancel_NotFoundForUnknownOrder(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.CanCancel(context.Background(), 1, 99)
	assertHTTPCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

// =====================
// GetCancellation / GetRefund
// =====================

func TestCancellationUsecase_GetRefund_Found(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, UserID: 1}, nil)
	repos.refunds.On("FindByOrderID", mock.Anything, int64(10)).Return(model.Refund{
		ID: 4, Amount: decimal.NewFromInt(21040), Status: model.RefundStatusPending,
	}, nil)

	out, err := uc.GetRefund(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), out.ID)
}

func TestCancellationUsecase_GetCancellation_NoneIsNotFound(t *testing.T) {
	repos := newTxReposStub()
	uc := newCancellationUsecase(repos)

	repos.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, UserID: 1}, nil)
	repos.cancellations.On("FindByOrderID", mock.Anything, int64(10)).
		Return(model.CancellationRequest{}, repo.ErrNotFound)

	_, err := uc.GetCancellation(context.Background(), 1, 10)
	assertHTTPCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}
