package http

import (
	"net/http"
	"strings"
	"time"

	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/pkg/logger"
	"sttock-tracker/pkg/token"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

const userIDContextKey = "user_id"

// AuthMiddleware validates bearer tokens and the sessions behind them. A
// short-lived in-process cache keeps the hot path off the session store.
type AuthMiddleware struct {
	tokenMgr     *token.Manager
	sessionRepo  repository.SessionRepository
	sessionCache *gocache.Cache
	logger       *logger.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokenMgr *token.Manager, sessionRepo repository.SessionRepository, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenMgr:     tokenMgr,
		sessionRepo:  sessionRepo,
		sessionCache: gocache.New(time.Minute, 5*time.Minute),
		logger:       log,
	}
}

// Authenticate rejects requests without a valid token and a live session,
// and stores the authenticated user ID on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header required"})
		}

		userID, err := m.tokenMgr.Validate(tokenString)
		if err != nil {
			m.logger.Debug("Token validation failed", logger.ErrorField(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
		}

		if _, cached := m.sessionCache.Get(tokenString); !cached {
			if _, err := m.sessionRepo.FindByToken(c.Request().Context(), tokenString); err != nil {
				m.logger.Debug("Session lookup failed", logger.ErrorField(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
			}
			m.sessionCache.SetDefault(tokenString, userID)
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

// Invalidate drops a token from the session cache, used on sign-out so a
// deleted session stops authenticating immediately.
func (m *AuthMiddleware) Invalidate(tokenString string) {
	m.sessionCache.Delete(tokenString)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func currentUserID(c echo.Context) uint {
	userID, _ := c.Get(userIDContextKey).(uint)
	return userID
}
