package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"gotrack/internal/errors"
)

// Middleware returns bearer-token middleware that resolves the caller's
// Identity through the given verifier and stores it in the echo context.
// Routes gating privileged operations must be built with the
// PlatformVerifier instance; passing the ClaimsVerifier is a visible
// wiring choice at the call site.
func Middleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrInvalidToken.Error(),
				Code:  "INVALID_TOKEN",
			})
		},
	})
}

// CurrentIdentity returns the Identity resolved by Middleware for this request.
func CurrentIdentity(c echo.Context) (*Identity, error) {
	identity, ok := c.Get("user").(*Identity)
	if !ok || identity == nil {
		return nil, errors.ErrInvalidToken
	}
	return identity, nil
}
