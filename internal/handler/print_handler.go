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

// /impresion 厨房の印刷キューAPI（cocinero/administrador専用）
type PrintHandler struct {
	uc *usecase.PrintQueueUsecase
}

func NewPrintHandler(uc *usecase.PrintQueueUsecase) *PrintHandler {
	return &PrintHandler{uc: uc}
}

func (h *PrintHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/v1/impresion")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RequireRole(string(model.RoleKitchen), string(model.RoleAdmin)))

	g.GET("/cola", h.listQueue)
	g.POST("/:pedidoID/imprimir", h.markPrinted)
	g.POST("/:pedidoID/reimprimir", h.reprint)
}

func (h *PrintHandler) listQueue(c echo.Context) error {
	out, err := h.uc.ListQueue(c.Request().Context(), c.QueryParam("estado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrintHandler) markPrinted(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.MarkPrinted(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrintHandler) reprint(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("pedidoID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.Reprint(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
