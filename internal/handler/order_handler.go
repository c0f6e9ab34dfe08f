package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /pedidos のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type ConfirmOrderRequest struct {
	Address       string   `json:"direccion_entrega"`
	Phone         string   `json:"telefono_contacto"`
	Instructions  string   `json:"instrucciones,omitempty"`
	Latitude      *float64 `json:"latitud,omitempty"`
	Longitude     *float64 `json:"longitud,omitempty"`
	PaymentMethod string   `json:"metodo_pago,omitempty"`
}

type ValidateAddressRequest struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/v1/pedidos")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/validar-direccion", h.validateAddress)
	g.GET("/resumen", h.summary)
	g.POST("", h.confirm)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) confirm(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	var req ConfirmOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid body"})
	}

	out, err := h.uc.ConfirmOrder(c.Request().Context(), userID, usecase.ConfirmOrderInput{
		Address:       req.Address,
		Phone:         req.Phone,
		Instructions:  req.Instructions,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// 座標だけのチェック。副作用なし、常に200
func (h *OrderHandler) validateAddress(c echo.Context) error {
	var req ValidateAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid body"})
	}

	out := h.uc.ValidateDeliveryAddress(req.Latitude, req.Longitude)
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) summary(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	out, err := h.uc.GetOrderSummary(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	f := repo.OrderListFilter{
		Status: c.QueryParam("estado"),
	}

	if v := c.QueryParam("fecha_desde"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid fecha_desde"})
		}
		f.From = &t
	}
	if v := c.QueryParam("fecha_hasta"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid fecha_hasta"})
		}
		f.To = &t
	}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid page"})
		}
		f.Page = p
	}
	if v := c.QueryParam("page_size"); v != "" {
		ps, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid page_size"})
		}
		f.PageSize = ps
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// fecha_desde/fecha_hastaはRFC3339か日付だけの形式を受ける
func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
