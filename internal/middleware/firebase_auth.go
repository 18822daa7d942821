package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// verifyTimeout bounds the round trip to the identity provider so a
// slow upstream cannot hang the request.
const verifyTimeout = 10 * time.Second

// FirebaseAuthMiddleware creates an Echo middleware to verify Firebase
// ID tokens presented as a Bearer header. On success the verified token
// and its UID are stored in the request context.
func FirebaseAuthMiddleware(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), verifyTimeout)
			defer cancel()

			token, err := authClient.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			c.Set("firebaseUID", token.UID)
			c.Set("firebaseToken", token)

			return next(c)
		}
	}
}
