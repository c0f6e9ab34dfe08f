package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /anulaciones のHTTP
type CancellationHandler struct {
	uc *usecase.CancellationUsecase
}

func NewCancellationHandler(uc *usecase.CancellationUsecase) *CancellationHandler {
	return &CancellationHandler{uc: uc}
}

type RequestCancellationRequest struct {
	OrderID int64  `json:"pedido_id"`
	Reason  string `json:"motivo"`
}

func (h *CancellationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/v1/anulaciones")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.request)
	g.GET("/pedido/:pedidoID/puede-anular", h.canCancel)
	g.GET("/:pedidoID", h.detail)
	g.GET("/:pedidoID/reembolso", h.refund)
}

func (h *CancellationHandler) request(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	var req RequestCancellationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid body"})
	}

	out, err := h.uc.RequestCancellation(c.Request().Context(), userID, usecase.RequestCancellationInput{
		OrderID: req.OrderID,
		Reason:  req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CancellationHandler) canCancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.CanCancel(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CancellationHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.GetCancellation(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CancellationHandler) refund(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.GetRefund(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
