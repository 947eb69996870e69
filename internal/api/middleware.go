package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"alcyxob/hoops-trainer/internal/identity"
	"alcyxob/hoops-trainer/internal/idgen"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/service"
)

// Constants for context keys and headers
const (
	ContextPrincipalKey = "principal"
	ContextTabIDKey     = "tabID"

	// TabHeader carries the browser tab's session namespace. A response always
	// echoes it, minting one when the request had none.
	TabHeader = "X-Tab-ID"
)

var tabIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// IdentityMiddleware resolves the current principal for every request.
// A bearer token must verify; without one the caller is anonymous within its tab.
func IdentityMiddleware(provider *identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}
			ctx = identity.WithToken(ctx, parts[1])
		}

		tabID := strings.TrimSpace(c.GetHeader(TabHeader))
		if tabID == "" {
			tabID = idgen.Token(16)
		} else if !tabIDPattern.MatchString(tabID) {
			abortWithError(c, http.StatusBadRequest, "Invalid "+TabHeader+" header")
			return
		}
		c.Header(TabHeader, tabID)
		ctx = identity.WithTab(ctx, tabID)

		principal, err := provider.CurrentPrincipal(ctx)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			} else {
				logger.Error().Err(err).Msg("Failed to resolve principal")
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve session")
			}
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Set(ContextTabIDKey, tabID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs every request with its outcome and timing.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 400 {
			event = logger.Warn()
		}
		if status >= 500 {
			event = logger.Error()
		}

		principal, _ := c.Get(ContextPrincipalKey)
		principalID := ""
		if p, ok := principal.(identity.Principal); ok {
			principalID = p.ID
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("principal", principalID).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}

// CORSMiddleware allows the browser client's origins, including the tab header.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", TabHeader},
		ExposeHeaders:    []string{"Content-Length", TabHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowOrigins = nil
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	}
	return cors.New(config)
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Reason}
		if verr.Hint != "" {
			body["hint"] = verr.Hint
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrResourceNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrPlanItemNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// Helper function to get the principal from context (used by handlers)
func getPrincipalFromContext(c *gin.Context) (identity.Principal, error) {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return identity.Principal{}, errors.New("principal not found in context")
	}
	principal, ok := raw.(identity.Principal)
	if !ok {
		return identity.Principal{}, errors.New("invalid principal type in context")
	}
	return principal, nil
}

// principalID is getPrincipalFromContext for handlers behind IdentityMiddleware.
// It aborts the request and reports false when no principal is set.
func principalID(c *gin.Context) (string, bool) {
	p, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve principal")
		return "", false
	}
	return p.ID, true
}
