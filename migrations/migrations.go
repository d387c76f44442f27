// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"time"

	"plmobile-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_create_recognition_logs",
			Migrate: func(tx *gorm.DB) error {
				type RecognitionLog struct {
					ID               uint      `gorm:"primaryKey"`
					EID              uuid.UUID `gorm:"type:uuid;not null;"`
					Status           string    `gorm:"size:20;not null;index"`
					ErrorKind        *string   `gorm:"size:20;default:null;"`
					NumberHash       *string   `gorm:"size:64;default:null;index"`
					Prefix           *string   `gorm:"size:2;default:null;"`
					Operator         *string   `gorm:"size:255;default:null;index"`
					DetailedOperator *string   `gorm:"size:255;default:null;"`
					IsM2M            bool      `gorm:"column:is_m2m;not null;default:false"`
					CreatedAt        time.Time
					UpdatedAt        time.Time
					DeletedAt        gorm.DeletedAt `gorm:"index"`
				}
				if err := tx.AutoMigrate(&RecognitionLog{}); err != nil {
					return fmt.Errorf("failed to create recognition_logs: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("recognition_logs")
			},
		},
		{
			ID: "002_add_recognition_log_source",
			Migrate: func(tx *gorm.DB) error {
				for _, column := range []string{"PrefixTable", "Source"} {
					if tx.Migrator().HasColumn(&models.RecognitionLog{}, column) {
						continue
					}
					if err := tx.Migrator().AddColumn(&models.RecognitionLog{}, column); err != nil {
						return fmt.Errorf("failed to add %s column: %w", column, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, column := range []string{"PrefixTable", "Source"} {
					if err := tx.Migrator().DropColumn(&models.RecognitionLog{}, column); err != nil {
						return fmt.Errorf("failed to drop %s column: %w", column, err)
					}
				}
				return nil
			},
		},
	}
}
