package middleware

import (
	"errors"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userNameKey = "userName"
)

var (
	errMissingToken  = errors.New("missing authorization header")
	errMalformedAuth = errors.New("invalid authorization header format")
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := requestToken(c)
		if err != nil {
			common.AbortWithError(c, common.ErrUnauthorized)
			return
		}

		claims, err := jwtManager.VerifyToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.AbortWithError(c, common.ErrExpiredToken)
			} else {
				common.AbortWithError(c, common.ErrInvalidToken)
			}
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userNameKey, claims.Name)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and never rejects.
// Used by routes that behave differently for owners and anonymous readers.
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := requestToken(c); err == nil {
			if claims, err := jwtManager.VerifyToken(token); err == nil {
				c.Set(userIDKey, claims.UserID)
				c.Set(userNameKey, claims.Name)
			}
		}
		c.Next()
	}
}

// requestToken reads the bearer token; browsers cannot set headers on a
// WebSocket handshake so upgrades may pass it as ?access_token=
func requestToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		if token := c.Query("access_token"); token != "" {
			return token, nil
		}
	}
	return bearerToken(header)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errMalformedAuth
	}
	return strings.TrimSpace(parts[1]), nil
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	if str, ok := userID.(string); ok {
		return str
	}
	return ""
}

// GetUserName extracts the display name from context
func GetUserName(c *gin.Context) string {
	return c.GetString(userNameKey)
}
