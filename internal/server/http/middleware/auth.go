package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ward3d/wardprints/internal/domain/model"
	pkgAuth "github.com/ward3d/wardprints/internal/pkg/auth"
)

const (
	// CustomerIDContextKey is a gin context key for the authenticated customer identifier.
	CustomerIDContextKey = "customerID"
	authCookieName       = "wardprints_token"
)

// TokenParser validates auth tokens and yields the customer identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// CustomerDirectory looks up customer accounts for authorization checks.
type CustomerDirectory interface {
	Customer(ctx context.Context, id int64) (*model.Customer, error)
}

// AuthRequired ensures the customer is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		customerID, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CustomerIDContextKey, customerID)
		c.Next()
	}
}

// StaffOnly rejects customers without the staff flag. Must run after AuthRequired.
func StaffOnly(directory CustomerDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(CustomerIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		id, _ := val.(int64)

		customer, err := directory.Customer(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !customer.Staff || customer.Disabled() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
