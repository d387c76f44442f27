// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"net/http"

	"plmobile-server/crypto"
	"plmobile-server/models"
	"plmobile-server/recognizer"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	DefaultMaxBatch         = 1000
	DefaultBatchConcurrency = 8

	auditSource = "api"
)

// Publisher receives recognition events. *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, ev *models.RecognitionEvent) error
}

// Handler serves the recognition API. DB and Publisher are optional; without
// them the audit log and event stream are skipped.
type Handler struct {
	Recognizer       *recognizer.Recognizer
	DB               *gorm.DB
	Publisher        Publisher
	Crypto           *crypto.Crypto
	MaxBatch         int
	BatchConcurrency int
}

func (h *Handler) maxBatch() int {
	if h.MaxBatch > 0 {
		return h.MaxBatch
	}
	return DefaultMaxBatch
}

func (h *Handler) concurrency() int {
	if h.BatchConcurrency > 0 {
		return h.BatchConcurrency
	}
	return DefaultBatchConcurrency
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		c.Logger().Error("Invalid request payload: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if err := c.Validate(req); err != nil {
		c.Logger().Warn("Request validation failed: ", err)
		return err
	}
	return nil
}
