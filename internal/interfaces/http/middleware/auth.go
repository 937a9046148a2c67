package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/auth"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
	"github.com/HIMU202508/TicketingSystem/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the token's
// subject and role in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			abortWith(c, errors.NewUnauthorizedError("missing authorization token"))
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWith(c, errors.NewUnauthorizedError("invalid authorization header format"))
			return
		}

		claims, err := m.jwtService.Verify(strings.TrimSpace(token))
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			abortWith(c, errors.NewUnauthorizedError("invalid or expired token"))
			return
		}

		c.Set(constants.ContextKeySubject, claims.Subject)
		c.Set(constants.ContextKeyRole, claims.Role.String())

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}
