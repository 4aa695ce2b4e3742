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

// AuthHandler handles HTTP requests for authentication and sessions.
type AuthHandler struct {
	authService  service.AuthService
	watchlistSvc service.WatchlistService
	authMW       *AuthMiddleware
	logger       *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, watchlistSvc service.WatchlistService, authMW *AuthMiddleware, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, watchlistSvc: watchlistSvc, authMW: authMW, logger: log}
}

// RegisterRoutes registers the auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/signup", h.SignUp)
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
	g.GET("/verify", h.Verify)
}

// Login godoc
// @Summary Validate credentials and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login identifier and secret"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Secret, c.Request().UserAgent(), c.RealIP())
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Please verify your email address before signing in."})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password."})
	}

	return c.JSON(http.StatusOK, resp)
}

// SignUp godoc
// @Summary Create an account
// @Description Creates an account. Depending on configuration the outcome
// @Description is an active session or a verification-needed message.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.SignUpRequest true "Sign-up identifier and secret"
// @Success 200 {object} dto.SignUpResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Identifier == "" || req.Secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifier and secret are required"})
	}

	resp := h.authService.SignUp(c.Request().Context(), req.Identifier, req.Secret)
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Close the current session
// @Description Best effort: always succeeds from the client's view.
// @Tags auth
// @Produce json
// @Success 204 {object} nil
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenString := bearerToken(c)
	if tokenString != "" {
		if userID := h.authService.SignOut(c.Request().Context(), tokenString); userID != 0 {
			// Drop the in-memory collection together with the session.
			h.watchlistSvc.Teardown(userID)
		}
		h.authMW.Invalidate(tokenString)
	}
	return c.NoContent(http.StatusNoContent)
}

// Session godoc
// @Summary Resolve the current session
// @Description Session bootstrap: returns a null session both when none
// @Description exists and when retrieval fails; never an error.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user := h.authService.CurrentSession(c.Request().Context(), bearerToken(c))
	return c.JSON(http.StatusOK, dto.SessionResponse{Session: user})
}

// Verify godoc
// @Summary Confirm an email verification token
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	verificationToken := c.QueryParam("token")
	if verificationToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Verification token is required"})
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), verificationToken); err != nil {
		if errors.Is(err, repository.ErrVerificationTokenInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Verification link is invalid or expired."})
		}
		h.logger.Error("Email verification failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Verification failed, please try again."})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Email verified. You can sign in now."})
}
