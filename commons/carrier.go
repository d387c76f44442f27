// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"plmobile-server/commons/prefixdb"
	"plmobile-server/recognizer"

	"github.com/nyaruka/phonenumbers"
)

const carrierRegion = "PL"

// InitPrefixDatabase loads the detailed prefix database named by
// PREFIX_DB_PATH or PREFIX_DB_URL, merged with PREFIX_DB_OVERWRITE_PATH.
// Any failure is logged and yields nil: recognition then works without
// detailed labels.
func InitPrefixDatabase(ctx context.Context) *prefixdb.Database {
	var (
		db  *prefixdb.Database
		err error
	)

	path := GetEnv("PREFIX_DB_PATH")
	url := GetEnv("PREFIX_DB_URL")
	switch {
	case path != "":
		db, err = prefixdb.LoadFile(path)
	case url != "":
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err = prefixdb.LoadURL(ctx, &http.Client{Timeout: 30 * time.Second}, url)
	default:
		Logger.Info("No prefix database configured, detailed operator labels disabled")
		return nil
	}
	if err != nil {
		Logger.Errorf("Failed to load prefix database: %v", err)
		return nil
	}

	overwritePath := GetEnv("PREFIX_DB_OVERWRITE_PATH")
	if overwritePath != "" {
		if _, statErr := os.Stat(overwritePath); statErr == nil {
			overwrite, err := prefixdb.LoadFile(overwritePath)
			if err != nil {
				Logger.Printf("Warning: Failed to load prefix database overwrite: %v", err)
			} else {
				db = prefixdb.Merge(db, overwrite)
				Logger.Printf("Loaded %d prefix overwrite entries", overwrite.Len())
			}
		}
	}

	Logger.Printf("Loaded %d total prefix database entries", db.Len())
	return db
}

// InitTable resolves the prefix table from PREFIX_TABLE_FILE or the
// PREFIX_TABLE preset name.
func InitTable() (*recognizer.Table, error) {
	if path := GetEnv("PREFIX_TABLE_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prefix table: %w", err)
		}
		table, err := recognizer.ParseTableYAML(data)
		if err != nil {
			return nil, err
		}
		Logger.Infof("Using prefix table %q from %s", table.Name(), path)
		return table, nil
	}
	table, err := recognizer.TableByName(GetEnv("PREFIX_TABLE", recognizer.ServerTableName))
	if err != nil {
		return nil, err
	}
	Logger.Infof("Using prefix table preset %q", table.Name())
	return table, nil
}

// InitRecognizer builds the process-wide recognizer from the environment.
func InitRecognizer(ctx context.Context) (*recognizer.Recognizer, error) {
	table, err := InitTable()
	if err != nil {
		return nil, err
	}
	db := InitPrefixDatabase(ctx)
	if db == nil {
		return recognizer.New(table, nil), nil
	}
	return recognizer.New(table, db), nil
}

// CarrierHint asks libphonenumber for the original carrier of a normalized
// national number. It returns "" when the number cannot be parsed or no
// carrier is known.
func CarrierHint(normalized string) string {
	if normalized == "" {
		return ""
	}
	num, err := phonenumbers.Parse(normalized, carrierRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumberForRegion(num, carrierRegion) {
		return ""
	}
	carrier, err := phonenumbers.GetCarrierForNumber(num, "en")
	if err != nil {
		return ""
	}
	return carrier
}
