package middleware

import (
	"strings"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Context keys used to hand the verified identity to downstream
// handlers. Logout needs the raw token string to know which session to
// remove.
const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// JWTAuthMiddleware checks for a valid JWT and extracts user claims.
// Verification trusts the signature and expiry alone; the user's stored
// token list is only consulted at logout time.
func JWTAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperror.Unauthenticated("Please login!")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return apperror.Unauthenticated("Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, apperror.Unauthenticated("Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				return apperror.Unauthenticated("Please login!")
			}

			// Store user claims and the raw token in context
			c.Set(ContextUserKey, claims)
			c.Set(ContextTokenKey, tokenString)

			return next(c)
		}
	}
}
