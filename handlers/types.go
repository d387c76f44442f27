// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"plmobile-server/models"
	"plmobile-server/recognizer"
)

// swagger:model PhoneNumberRequest
type PhoneNumberRequest struct {
	// Phone number in any common notation
	// required: true
	PhoneNumber string `json:"phone_number" validate:"required_without=PhoneNumberAlt" example:"+48 501-234-567"`
	// Alternative field name used by browser clients
	PhoneNumberAlt string `json:"phoneNumber" example:"501234567"`
}

// Number returns whichever of the two accepted fields was supplied.
func (r PhoneNumberRequest) Number() string {
	if r.PhoneNumber != "" {
		return r.PhoneNumber
	}
	return r.PhoneNumberAlt
}

// swagger:model BatchRequest
type BatchRequest struct {
	// Phone numbers to recognize, in request order
	PhoneNumbers []string `json:"phone_numbers" validate:"required_without=PhoneNumbersAlt"`
	// Alternative field name used by browser clients
	PhoneNumbersAlt []string `json:"phoneNumbers"`
}

func (r BatchRequest) Numbers() []string {
	if len(r.PhoneNumbers) > 0 {
		return r.PhoneNumbers
	}
	return r.PhoneNumbersAlt
}

// swagger:model FormatRequest
type FormatRequest struct {
	PhoneNumberRequest
	// Output style: standard, spaced or international. Unknown styles format as standard.
	Style string `json:"style" example:"international"`
}

// swagger:model NormalizeResponse
type NormalizeResponse struct {
	// Input as received
	PhoneNumber string `json:"phone_number" example:"+48 501-234-567"`
	// Digits only, country code removed
	Normalized string `json:"normalized" example:"501234567"`
}

// swagger:model RecognizeResponse
type RecognizeResponse struct {
	recognizer.RecognitionResult
	// Carrier reported by libphonenumber, when it knows one
	Carrier string `json:"carrier,omitempty" example:"Orange"`
}

// swagger:model BatchResponse
type BatchResponse struct {
	// One result per input, in request order
	Results []recognizer.RecognitionResult `json:"results"`
	// Number of results
	Count int `json:"count" example:"2"`
}

// swagger:model FormatResponse
type FormatResponse struct {
	PhoneNumber string `json:"phone_number" example:"501234567"`
	Style       string `json:"style" example:"international"`
	Formatted   string `json:"formatted" example:"+48 501 234 567"`
}

// swagger:model M2MResponse
type M2MResponse struct {
	PhoneNumber string `json:"phone_number" example:"211234567"`
	IsM2M       bool   `json:"is_m2m" example:"true"`
}

// swagger:model PrefixesResponse
type PrefixesResponse struct {
	// Name of the active prefix table
	Table string `json:"table" example:"server"`
	// Sorted valid 2-digit prefixes
	Prefixes []string `json:"prefixes"`
	// Prefixes flagged as machine-to-machine
	M2M []string `json:"m2m"`
}

// swagger:model OperatorsResponse
type OperatorsResponse struct {
	Table     string                        `json:"table" example:"server"`
	Operators []recognizer.OperatorPrefixes `json:"operators"`
}

// swagger:model OperatorResponse
type OperatorResponse struct {
	Prefix   string `json:"prefix" example:"50"`
	Operator string `json:"operator" example:"Orange"`
	IsM2M    bool   `json:"is_m2m" example:"false"`
}

// swagger:model RecognitionSummaryResponse
type RecognitionSummaryResponse struct {
	// Total number of logged recognitions
	Total int64 `json:"total" example:"42"`
	// Successful recognitions
	Recognized int64 `json:"recognized" example:"40"`
	// Rejected inputs
	Rejected int64 `json:"rejected" example:"2"`
	// Successful recognitions grouped by operator and M2M flag
	Operators []models.OperatorCount `json:"operators"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	Status           string `json:"status" example:"ok"`
	Table            string `json:"table" example:"server"`
	DetailedDatabase bool   `json:"detailed_database" example:"true"`
	AuditLog         bool   `json:"audit_log" example:"true"`
	Events           bool   `json:"events" example:"false"`
}
