// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"strings"

	"plmobile-server/crypto"

	"github.com/labstack/echo/v4"
)

// VerifyAPIKeyMiddleware requires "Authorization: Bearer <key>" where key
// matches the argon2id hash keyHash. An empty keyHash disables the check.
func VerifyAPIKeyMiddleware(keyHash string, c *crypto.Crypto) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if keyHash == "" {
			return next
		}
		return func(ctx echo.Context) error {
			logger := ctx.Logger()

			authHeader := ctx.Request().Header.Get("Authorization")
			apiKey, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || apiKey == "" {
				logger.Warn("Authorization header missing or invalid.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Bearer API key is required",
				}
			}

			if err := c.VerifyAPIKey(apiKey, keyHash); err != nil {
				logger.Warn("API key verification failed: ", err)
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid API key",
				}
			}
			return next(ctx)
		}
	}
}
