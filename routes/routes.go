// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"plmobile-server/commons"
	"plmobile-server/handlers"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the API on e. auth guards every /v1 route.
func RegisterRoutes(e *echo.Echo, h *handlers.Handler, auth echo.MiddlewareFunc) {
	commons.Logger.Debug("Registering v1 routes")
	e.GET("/health", h.HealthHandler)

	api_v1 := e.Group("/v1", auth)
	api_v1.POST("/normalize", h.NormalizeHandler)
	api_v1.POST("/validate", h.ValidateHandler)
	api_v1.POST("/recognize", h.RecognizeHandler)
	api_v1.POST("/recognize/batch", h.RecognizeBatchHandler)
	api_v1.POST("/format", h.FormatHandler)
	api_v1.GET("/m2m/:number", h.M2MHandler)
	api_v1.GET("/prefixes", h.PrefixesHandler)
	api_v1.GET("/operators", h.OperatorsHandler)
	api_v1.GET("/operators/:prefix", h.OperatorForPrefixHandler)
	api_v1.GET("/recognition-logs/summary", h.GetRecognitionLogsSummaryHandler)
	commons.Logger.Info("v1 routes registered successfully")
}
