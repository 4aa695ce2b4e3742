package http

import (
	"net/http"
	"strings"

	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/pkg/common"
	"sttock-tracker/pkg/credentials"
	"sttock-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SettingsHandler manages the user-supplied Gemini credential, cached
// under a fixed key and reused until cleared.
type SettingsHandler struct {
	credentials credentials.Provider
	logger      *logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(creds credentials.Provider, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{credentials: creds, logger: log}
}

// RegisterRoutes registers the settings routes to the Echo group.
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.PUT("/news-api-key", h.UpdateAPIKey)
	g.DELETE("/news-api-key", h.ClearAPIKey)
}

// UpdateAPIKey godoc
// @Summary Store the Gemini API key
// @Tags settings
// @Accept json
// @Produce json
// @Param credential body dto.UpdateAPIKeyRequest true "API key"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/news-api-key [put]
func (h *SettingsHandler) UpdateAPIKey(c echo.Context) error {
	var req dto.UpdateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if strings.TrimSpace(req.APIKey) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "API key must not be empty"})
	}

	if err := h.credentials.Set(common.GeminiAPIKeyStorageKey, strings.TrimSpace(req.APIKey)); err != nil {
		h.logger.Error("Failed to store API key", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store API key"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearAPIKey godoc
// @Summary Clear the stored Gemini API key
// @Tags settings
// @Produce json
// @Success 204 {object} nil
// @Security BearerAuth
// @Router /settings/news-api-key [delete]
func (h *SettingsHandler) ClearAPIKey(c echo.Context) error {
	if err := h.credentials.Clear(common.GeminiAPIKeyStorageKey); err != nil {
		h.logger.Error("Failed to clear API key", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to clear API key"})
	}
	return c.NoContent(http.StatusNoContent)
}
