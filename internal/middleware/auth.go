package middleware

import (
	"context"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"covoiturage/internal/auth"
	"covoiturage/internal/errors"
	"covoiturage/internal/model"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

const (
	claimsContextKey = "claims"
	authContextKey   = "authContext"
)

// UserFinder is the slice of the user repository the admin-status resolution
// step needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Authenticate extracts the session token from the request cookie and
// verifies it. A request without the cookie is rejected with 401, a request
// whose token is rejected (bad signature, malformed, expired) with 403. On
// success the decoded identity is attached to the request as an *auth.Context
// with the admin flag left unresolved.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "cookie:" + CookieName,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			// Verification happens exactly once per request, here.
			return tokens.Verify(tokenString)
		},
		SuccessHandler: func(c echo.Context) {
			claims := c.Get(claimsContextKey).(*auth.Claims)
			c.Set(authContextKey, auth.NewContext(claims.UserID, claims.Username))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if _, cerr := c.Cookie(CookieName); cerr != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			// The token itself is never logged.
			c.Logger().Warnf("auth: token rejected on %s: %v", c.Path(), err)
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "TOKEN_REJECTED",
			})
		},
	})
}

// RequireAdminStatus resolves the authenticated user's admin flag via the
// credential store and records it on the authorization context. It must run
// after Authenticate. A vanished user row maps to 404, any other lookup
// failure to 500.
func RequireAdminStatus(users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actx := AuthContext(c)
			if actx == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}

			user, err := users.FindByID(c.Request().Context(), actx.UserID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
						Error: "utilisateur non trouvé",
						Code:  "USER_NOT_FOUND",
					})
				}
				c.Logger().Errorf("auth: admin lookup failed on %s: %v", c.Path(), err)
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			actx.ResolveAdmin(user.EstAdmin)
			return next(c)
		}
	}
}

// AuthContext returns the authorization context attached by Authenticate, or
// nil when the request never passed it.
func AuthContext(c echo.Context) *auth.Context {
	actx, _ := c.Get(authContextKey).(*auth.Context)
	return actx
}
