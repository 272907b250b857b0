package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"vidshelf/internal/errors"
)

// claimsContextKey is where the verifier stores the parsed token. It matches
// the echo-jwt default so CurrentClaims works with either configuration.
const claimsContextKey = "user"

// Middleware returns the credential verifier: it extracts the bearer token
// from the Authorization header, verifies it against the secret and attaches
// the parsed claims to the request context. Missing, malformed and expired
// tokens are all rejected with 401 before the handler runs.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// CurrentClaims returns the identity attached to the request context by the
// verifier. The second return is false when no verified identity is present.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(claimsContextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// RequireRoles returns the role gate: a middleware that admits only requests
// whose verified identity carries one of the permitted roles. The permitted
// set is fixed per route. A request without a verified identity is refused
// with 401; the role comparison never runs against an absent identity.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	permitted := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		permitted[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			if _, ok := permitted[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
