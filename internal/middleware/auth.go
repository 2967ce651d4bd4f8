package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/auth"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/httputil"
)

const (
	// ContextUser holds the authenticated *model.User.
	ContextUser = "user"
	// ContextUserID holds the authenticated user's id string.
	ContextUserID = "user_id"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and loads the account into context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized(nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, apperrors.Unauthorized(nil))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized(err))
			c.Abort()
			return
		}

		user, err := m.authService.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized(err))
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID.String())
		c.Next()
	}
}

// RequireActiveRole rejects accounts that have no live role. The client is
// expected to route these users to access-code entry.
func (m *AuthMiddleware) RequireActiveRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.NeedsAccessCode(time.Now()) {
			httputil.RespondWithError(c, apperrors.AccessCodeRequired())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects callers whose active role is not the given one.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.NeedsAccessCode(time.Now()) {
			httputil.RespondWithError(c, apperrors.AccessCodeRequired())
			c.Abort()
			return
		}
		if !user.HasRole(role) {
			httputil.RespondWithError(c, apperrors.Forbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from context, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
