// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"strings"

	"github.com/labstack/gommon/log"
)

const LogHeader = "${time_rfc3339} ${level} ${short_file}:${line} -"

var Logger = newLogger()

func newLogger() *log.Logger {
	logger := log.New("plmobile")
	logger.SetLevel(ParseLogLevel(GetEnv("LOG_LEVEL")))
	logger.SetHeader(LogHeader)
	return logger
}

// InitLogger re-reads LOG_LEVEL, for use after an env file has been loaded.
func InitLogger() {
	Logger.SetLevel(ParseLogLevel(GetEnv("LOG_LEVEL")))
}

func ParseLogLevel(level string) log.Lvl {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
