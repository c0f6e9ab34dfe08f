package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /notificaciones 確認メールのHTTP
type NotificationHandler struct {
	uc *usecase.EmailUsecase
}

func NewNotificationHandler(uc *usecase.EmailUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

type SendConfirmationRequest struct {
	OrderID int64  `json:"pedido_id"`
	To      string `json:"email_destino,omitempty"`
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/v1/notificaciones")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/email-confirmacion", h.send)
	g.POST("/:pedidoID/reenviar-confirmacion", h.resend)
}

func (h *NotificationHandler) send(c echo.Context) error {
	var req SendConfirmationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid body"})
	}

	out, err := h.uc.SendConfirmation(c.Request().Context(), usecase.SendConfirmationInput{
		OrderID: req.OrderID,
		To:      req.To,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, out)
}

func (h *NotificationHandler) resend(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: usecase.CodeUnauthorized})
	}
	role, _ := getUserRoleFromContext(c)

	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.Resend(c.Request().Context(), userID, model.Role(role), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, out)
}
