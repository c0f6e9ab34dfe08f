package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// 安定した機械可読コード。クライアントはこちらで分岐する
const (
	CodeEmptyCart          = "empty_cart"
	CodeProductUnavailable = "product_unavailable"
	CodeInsufficientStock  = "insufficient_stock"
	CodeOutOfCoverage      = "out_of_coverage"
	CodeAlreadyCancelled   = "already_cancelled"
	CodeTooLate            = "too_late"
	CodeDuplicateRequest   = "duplicate_request"
	CodeWindowExpired      = "window_expired"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_error"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodeInternal           = "internal_error"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func NewHTTPError(status int, code string, message string) error {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 所有者以外には存在も見せない（本人以外は一律404）
func errNotFound() error {
	return NewHTTPError(http.StatusNotFound, CodeNotFound, "not found")
}

func errInternal() error {
	return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
}

func errValidation(msg string) error {
	return NewHTTPError(http.StatusBadRequest, CodeValidation, msg)
}

func errUnauthorized() error {
	return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
}
