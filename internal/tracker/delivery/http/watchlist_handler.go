package http

import (
	"errors"
	"net/http"

	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/internal/tracker/service"
	"sttock-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the tracked-stock collection.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListStocks)
	g.POST("", h.AddStock)
	g.DELETE("/:id", h.RemoveStock)
}

// ListStocks godoc
// @Summary List the tracked stocks
// @Description Returns the collection newest first. A retrieval failure
// @Description fails open to an empty list and is only logged.
// @Tags stocks
// @Produce json
// @Success 200 {array} dto.StockResponse
// @Security BearerAuth
// @Router /stocks [get]
func (h *WatchlistHandler) ListStocks(c echo.Context) error {
	stocks, err := h.watchlistService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		// Fail open: the client renders an empty collection.
		h.logger.Error("Failed to load stocks", logger.ErrorField(err))
		return c.JSON(http.StatusOK, []dto.StockResponse{})
	}
	return c.JSON(http.StatusOK, stocks)
}

// AddStock godoc
// @Summary Track a new stock symbol
// @Description Rejects duplicates before any fetch, fetches the news
// @Description summary, persists and returns the new entry.
// @Tags stocks
// @Accept json
// @Produce json
// @Param stock body dto.AddStockRequest true "Symbol to track"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stocks [post]
func (h *WatchlistHandler) AddStock(c echo.Context) error {
	var req dto.AddStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	stock, err := h.watchlistService.Add(c.Request().Context(), currentUserID(c), req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSymbolEmpty):
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Stock symbol must not be empty."})
		case errors.Is(err, service.ErrSymbolTracked):
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "This stock is already in your collection."})
		case errors.Is(err, repository.ErrAPIKeyMissing):
			return c.JSON(http.StatusPreconditionFailed, dto.ErrorResponse{
				Error: "Gemini API key is not configured. Add one under settings.",
				Code:  dto.ErrCodeAPIKeyMissing,
			})
		case errors.Is(err, service.ErrNewsFetch):
			return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Failed to fetch news or save data. Please check connection."})
		default:
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch news or save data. Please check connection."})
		}
	}

	return c.JSON(http.StatusCreated, stock)
}

// RemoveStock godoc
// @Summary Remove a tracked stock
// @Description Removing an id that is not tracked is a no-op success.
// @Tags stocks
// @Produce json
// @Param id path string true "Stock ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stocks/{id} [delete]
func (h *WatchlistHandler) RemoveStock(c echo.Context) error {
	if err := h.watchlistService.Remove(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		// The service layer already logs the error and rolled back.
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete stock."})
	}
	return c.NoContent(http.StatusNoContent)
}
