// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PrefixesHandler godoc
// @Summary      List valid prefixes
// @Tags         catalog
// @Produce      json
// @Success      200 {object} PrefixesResponse
// @Router       /v1/prefixes [get]
func (h *Handler) PrefixesHandler(c echo.Context) error {
	table := h.Recognizer.Table()
	return c.JSON(http.StatusOK, PrefixesResponse{
		Table:    table.Name(),
		Prefixes: h.Recognizer.ValidPrefixes(),
		M2M:      table.M2MPrefixes(),
	})
}

// OperatorsHandler godoc
// @Summary      List operators and their prefixes
// @Tags         catalog
// @Produce      json
// @Success      200 {object} OperatorsResponse
// @Router       /v1/operators [get]
func (h *Handler) OperatorsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, OperatorsResponse{
		Table:     h.Recognizer.Table().Name(),
		Operators: h.Recognizer.OperatorPrefixes(),
	})
}

// OperatorForPrefixHandler godoc
// @Summary      Look up the operator owning a prefix
// @Description  Unassigned prefixes resolve to Unknown.
// @Tags         catalog
// @Produce      json
// @Param        prefix  path  string  true  "2-digit prefix"
// @Success      200 {object} OperatorResponse
// @Router       /v1/operators/{prefix} [get]
func (h *Handler) OperatorForPrefixHandler(c echo.Context) error {
	prefix := c.Param("prefix")
	return c.JSON(http.StatusOK, OperatorResponse{
		Prefix:   prefix,
		Operator: h.Recognizer.OperatorForPrefix(prefix),
		IsM2M:    h.Recognizer.Table().IsM2M(prefix),
	})
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *Handler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:           "ok",
		Table:            h.Recognizer.Table().Name(),
		DetailedDatabase: h.Recognizer.HasDetailedDatabase(),
		AuditLog:         h.DB != nil,
		Events:           h.Publisher != nil,
	})
}
