// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"plmobile-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetRecognitionLogsSummaryHandler godoc
// @Summary      Summarize the recognition audit log
// @Description  Counts recognized and rejected numbers, and recognized numbers per operator.
// @Tags         recognition-logs
// @Produce      json
// @Security     BearerAuth
// @Param        table   query  string  false  "Only count recognitions made with this prefix table"
// @Param        source  query  string  false  "Only count recognitions from this source"
// @Success      200 {object} RecognitionSummaryResponse
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Failure      503 {object} echo.HTTPError "Audit log disabled"
// @Router       /v1/recognition-logs/summary [get]
func (h *Handler) GetRecognitionLogsSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	if h.DB == nil {
		return &echo.HTTPError{
			Code:    http.StatusServiceUnavailable,
			Message: "Recognition audit log is disabled",
		}
	}

	table, source := c.QueryParam("table"), c.QueryParam("source")
	logs := func() *gorm.DB {
		q := h.DB.Model(&models.RecognitionLog{})
		if table != "" {
			q = q.Where("prefix_table = ?", table)
		}
		if source != "" {
			q = q.Where("source = ?", source)
		}
		return q
	}

	var resp RecognitionSummaryResponse
	if err := logs().Count(&resp.Total).Error; err != nil {
		logger.Error("Failed to count recognition logs: ", err)
		return echo.ErrInternalServerError
	}
	if err := logs().Where("status = ?", models.Recognized).Count(&resp.Recognized).Error; err != nil {
		logger.Error("Failed to count recognized numbers: ", err)
		return echo.ErrInternalServerError
	}
	resp.Rejected = resp.Total - resp.Recognized

	resp.Operators = []models.OperatorCount{}
	if err := logs().
		Where("status = ?", models.Recognized).
		Select("operator, is_m2m, COUNT(*) AS count").
		Group("operator, is_m2m").
		Order("count DESC, operator").
		Scan(&resp.Operators).Error; err != nil {
		logger.Error("Failed to summarize recognition logs: ", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, resp)
}
