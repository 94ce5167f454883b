package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"yatube-api/logs"
	"yatube-api/models"
	"yatube-api/utils"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// UserKey holds the *models.User loaded by AuthMiddleware.
const UserKey = "user"

var errInvalidToken = errors.New("invalid token")

// ParseToken validates an HS256 token and returns its user_id claim.
func ParseToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errInvalidToken
	}
	return userID, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// AuthMiddleware rejects requests without a valid bearer token. The token's
// user must still exist: tokens of deleted users are refused.
func AuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error: "Authorization token required",
				Code:  http.StatusUnauthorized,
			})
			return
		}

		userID, err := ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  http.StatusUnauthorized,
			})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
					Error: "User no longer exists",
					Code:  http.StatusUnauthorized,
				})
				return
			}
			logs.LogJSON("ERROR", "Could not load token user", map[string]interface{}{
				"error":  err.Error(),
				"userID": userID,
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
				Error: "Internal server error",
				Code:  http.StatusInternalServerError,
			})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the viewer when a valid token is sent and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if userID, err := ParseToken(tokenStr, secret); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserFinder loads the user behind a token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		userID := c.GetString(UserIDKey)

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error: "Authentication required",
				Code:  http.StatusUnauthorized,
			})
			return
		}

		var user *models.User
		value, ok := c.Get(UserKey)
		if ok {
			user, ok = value.(*models.User)
		}
		if !ok {
			found, err := users.FindByID(c.Request.Context(), userID)
			if err == nil {
				user, ok = found, true
			}
		}
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Error: "Administrator access required",
				Code:  http.StatusForbidden,
			})
			logs.LogJSON("WARN", "Non-admin user blocked from admin route", map[string]interface{}{
				"route":  route,
				"userID": userID,
			})
			return
		}

		c.Next()
	}
}
