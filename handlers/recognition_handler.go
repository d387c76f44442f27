// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"plmobile-server/commons"
	"plmobile-server/models"
	"plmobile-server/recognizer"

	"github.com/labstack/echo/v4"
)

// NormalizeHandler godoc
// @Summary      Normalize a phone number
// @Description  Strips every non-digit character and a leading 48 country code.
// @Tags         recognition
// @Accept       json
// @Produce      json
// @Param        request  body  PhoneNumberRequest  true  "Phone number payload"
// @Success      200 {object} NormalizeResponse
// @Failure      400 {object} echo.HTTPError "Missing phone_number"
// @Router       /v1/normalize [post]
func (h *Handler) NormalizeHandler(c echo.Context) error {
	var req PhoneNumberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NormalizeResponse{
		PhoneNumber: req.Number(),
		Normalized:  h.Recognizer.Normalize(req.Number()),
	})
}

// ValidateHandler godoc
// @Summary      Validate a phone number
// @Description  Checks length and prefix. Invalid numbers are reported in the body with valid=false.
// @Tags         recognition
// @Accept       json
// @Produce      json
// @Param        request  body  PhoneNumberRequest  true  "Phone number payload"
// @Success      200 {object} recognizer.ValidationResult
// @Failure      400 {object} echo.HTTPError "Missing phone_number"
// @Router       /v1/validate [post]
func (h *Handler) ValidateHandler(c echo.Context) error {
	var req PhoneNumberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.Recognizer.Validate(req.Number()))
}

// RecognizeHandler godoc
// @Summary      Recognize the operator of a phone number
// @Description  Validates the number and resolves its operator, detailed operator and M2M flag.
// @Description  The outcome is written to the audit log and published as a recognition event when those are enabled.
// @Tags         recognition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  PhoneNumberRequest  true  "Phone number payload"
// @Success      200 {object} RecognizeResponse
// @Failure      400 {object} echo.HTTPError "Missing phone_number"
// @Failure      401 {object} echo.HTTPError "Invalid API key"
// @Router       /v1/recognize [post]
func (h *Handler) RecognizeHandler(c echo.Context) error {
	var req PhoneNumberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result := h.Recognizer.Recognize(req.Number())
	resp := RecognizeResponse{RecognitionResult: result}
	if result.Success {
		resp.Carrier = commons.CarrierHint(result.Normalized)
	}

	h.record(c, []recognizer.RecognitionResult{result})
	return c.JSON(http.StatusOK, resp)
}

// RecognizeBatchHandler godoc
// @Summary      Recognize many phone numbers
// @Description  Recognizes every number concurrently. Results keep request order.
// @Tags         recognition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  BatchRequest  true  "Batch payload"
// @Success      200 {object} BatchResponse
// @Failure      400 {object} echo.HTTPError "Empty or oversized batch"
// @Failure      401 {object} echo.HTTPError "Invalid API key"
// @Router       /v1/recognize/batch [post]
func (h *Handler) RecognizeBatchHandler(c echo.Context) error {
	logger := c.Logger()

	var req BatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	numbers := req.Numbers()
	if len(numbers) == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "phone_numbers field must be a non-empty array",
		}
	}
	if len(numbers) > h.maxBatch() {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("batch too large: %d numbers, maximum is %d", len(numbers), h.maxBatch()),
		}
	}

	results, err := h.Recognizer.RecognizeBatchConcurrent(c.Request().Context(), numbers, h.concurrency())
	if err != nil {
		logger.Error("Batch recognition aborted: ", err)
		return echo.ErrServiceUnavailable
	}

	h.record(c, results)
	return c.JSON(http.StatusOK, BatchResponse{Results: results, Count: len(results)})
}

// FormatHandler godoc
// @Summary      Format a phone number
// @Description  Formats a valid-length number as standard, spaced or international. Other inputs are echoed back.
// @Tags         recognition
// @Accept       json
// @Produce      json
// @Param        request  body  FormatRequest  true  "Format payload"
// @Success      200 {object} FormatResponse
// @Failure      400 {object} echo.HTTPError "Missing phone_number"
// @Router       /v1/format [post]
func (h *Handler) FormatHandler(c echo.Context) error {
	var req FormatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	style := recognizer.ParseStyle(req.Style)
	return c.JSON(http.StatusOK, FormatResponse{
		PhoneNumber: req.Number(),
		Style:       string(style),
		Formatted:   h.Recognizer.Format(req.Number(), style),
	})
}

// M2MHandler godoc
// @Summary      Check the M2M flag of a phone number
// @Tags         recognition
// @Produce      json
// @Param        number  path  string  true  "Phone number"
// @Success      200 {object} M2MResponse
// @Router       /v1/m2m/{number} [get]
func (h *Handler) M2MHandler(c echo.Context) error {
	number := c.Param("number")
	return c.JSON(http.StatusOK, M2MResponse{
		PhoneNumber: number,
		IsM2M:       h.Recognizer.IsM2M(number),
	})
}

// record writes results to the audit log and publishes them. Failures are
// logged and never fail the request.
func (h *Handler) record(c echo.Context, results []recognizer.RecognitionResult) {
	logger := c.Logger()
	table := h.Recognizer.Table().Name()

	if h.DB != nil {
		var hash func(string) string
		if h.Crypto != nil {
			hash = h.Crypto.HashNumber
		}
		logs := make([]models.RecognitionLog, 0, len(results))
		for _, r := range results {
			logs = append(logs, models.NewRecognitionLog(table, auditSource, r, hash))
		}
		if err := h.DB.CreateInBatches(&logs, 100).Error; err != nil {
			logger.Error("Failed to write recognition audit log: ", err)
		}
	}

	if h.Publisher != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		for _, r := range results {
			if err := h.Publisher.Publish(ctx, models.NewRecognitionEvent(table, r)); err != nil {
				logger.Error("Failed to publish recognition event: ", err)
				break
			}
		}
	}
}
