package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RevocationChecker reports whether a token id has been revoked by a logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the JWT, rejects revoked tokens, and injects the caller's
// user id into context. Every protected handler resolves its caller from the
// value set here and nothing else.
func Auth(jwtSecret string, revoked RevocationChecker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revoked != nil {
				if jti, _ := claims["jti"].(string); jti != "" {
					isRevoked, err := revoked.IsRevoked(c.Request().Context(), jti)
					if err != nil {
						// Fail closed: a token whose revocation status
						// cannot be checked is not accepted.
						log.Error().Err(err).Msg("token revocation check failed")
						return echo.NewHTTPError(http.StatusServiceUnavailable, "authorization temporarily unavailable")
					}
					if isRevoked {
						return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
					}
				}
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])

			return next(c)
		}
	}
}
