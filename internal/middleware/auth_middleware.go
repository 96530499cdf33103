package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rajwen/domain"
	"rajwen/pkg/logger"
	"rajwen/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks that a token still has a live session behind it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// UserResolver loads the user a token's subject points at.
type UserResolver interface {
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}

	return tokenParts[1], true
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": message})
}

// AuthMiddleware authenticates the bearer token and resolves the subject
// against the user store. A valid signature over a deleted user is still
// rejected.
func AuthMiddleware(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return unauthorized(c, "missing or malformed authorization header")
			}

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				return unauthorized(c, "invalid token")
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return unauthorized(c, "token expired")
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return unauthorized(c, "invalid token")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			user, err := users.GetUserByID(ctx, uint(userIDUint))
			if err != nil {
				logger.Error("Token subject does not resolve to a user", err)
				return unauthorized(c, "invalid token")
			}

			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			c.Set("user", user)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithSessions layers the session store over AuthMiddleware so
// that tokens invalidated by logout stop working before they expire.
func AuthMiddlewareWithSessions(users UserResolver, sessions TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return unauthorized(c, "missing or malformed authorization header")
			}

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				logger.Error("Failed to parse JWT", err)
				return unauthorized(c, "invalid token")
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return unauthorized(c, "token expired")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sessionUserID, err := sessions.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Error("Token has no live session", err)
				return unauthorized(c, "token expired or invalid")
			}

			if sessionUserID != claims.UserID {
				logger.Error("Token subject does not match its session")
				return unauthorized(c, "invalid token")
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return unauthorized(c, "invalid token")
			}

			user, err := users.GetUserByID(ctx, uint(userIDUint))
			if err != nil {
				logger.Error("Token subject does not resolve to a user", err)
				return unauthorized(c, "invalid token")
			}

			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			c.Set("user", user)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AdminOnly rejects any authenticated caller whose role is not admin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "admin access required"})
			}

			return next(c)
		}
	}
}
