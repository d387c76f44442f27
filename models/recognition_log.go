// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"plmobile-server/recognizer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecognitionStatus string

const (
	Recognized RecognitionStatus = "RECOGNIZED"
	Rejected   RecognitionStatus = "REJECTED"
)

// RecognitionLog is the audit record of one recognition request. Numbers are
// stored as a keyed hash, never in clear.
type RecognitionLog struct {
	ID               uint              `gorm:"primaryKey"`
	EID              uuid.UUID         `gorm:"type:uuid;not null;"`
	Status           RecognitionStatus `gorm:"size:20;not null;index"`
	ErrorKind        *string           `gorm:"size:20;default:null;"`
	NumberHash       *string           `gorm:"size:64;default:null;index"`
	Prefix           *string           `gorm:"size:2;default:null;"`
	Operator         *string           `gorm:"size:255;default:null;index"`
	DetailedOperator *string           `gorm:"size:255;default:null;"`
	IsM2M            bool              `gorm:"column:is_m2m;not null;default:false"`
	PrefixTable      string            `gorm:"size:50;not null;default:''"`
	Source           string            `gorm:"size:20;not null;default:''"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// OperatorCount is one row of the per-operator summary.
type OperatorCount struct {
	Operator string `json:"operator" gorm:"column:operator"`
	IsM2M    bool   `json:"is_m2m" gorm:"column:is_m2m"`
	Count    int64  `json:"count" gorm:"column:count"`
}

// NewRecognitionLog builds the audit entry for r. hash, when set, maps the
// normalized number to the value stored in NumberHash.
func NewRecognitionLog(table, source string, r recognizer.RecognitionResult, hash func(string) string) RecognitionLog {
	entry := RecognitionLog{
		Status:      Recognized,
		IsM2M:       r.IsM2M,
		PrefixTable: table,
		Source:      source,
	}
	if !r.Success {
		entry.Status = Rejected
		kind := string(r.Kind)
		entry.ErrorKind = &kind
		return entry
	}
	if hash != nil {
		h := hash(r.Normalized)
		entry.NumberHash = &h
	}
	prefix, operator := r.Prefix, r.Operator
	entry.Prefix = &prefix
	entry.Operator = &operator
	if r.DetailedOperator != "" {
		detailed := r.DetailedOperator
		entry.DetailedOperator = &detailed
	}
	return entry
}

func (l *RecognitionLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.EID = uuid.New()
	return
}

func init() {
	AllModels = append(AllModels, &RecognitionLog{})
}
