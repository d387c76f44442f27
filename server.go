// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"os"
	"slices"

	"plmobile-server/commons"
	"plmobile-server/crypto"
	"plmobile-server/db"
	"plmobile-server/handlers"
	"plmobile-server/middlewares"
	"plmobile-server/rabbitmq"
	"plmobile-server/routes"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	rec, err := commons.InitRecognizer(context.Background())
	if err != nil {
		commons.Logger.Error("Failed to load prefix table:", err)
		os.Exit(1)
	}

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}

	cryptoInstance := crypto.NewCrypto()
	if err := cryptoInstance.CheckPepper(); err != nil {
		commons.Logger.Warn(err)
	}
	h := &handlers.Handler{
		Recognizer:       rec,
		DB:               db.Conn,
		Crypto:           cryptoInstance,
		MaxBatch:         commons.GetEnvInt("BATCH_MAX_SIZE", handlers.DefaultMaxBatch),
		BatchConcurrency: commons.GetEnvInt("BATCH_CONCURRENCY", handlers.DefaultBatchConcurrency),
	}

	if amqpURL := commons.GetEnv("RABBITMQ_URL"); amqpURL != "" {
		publisher, err := rabbitmq.NewPublisher(rabbitmq.RabbitMQConfig{
			AMQPURL:  amqpURL,
			Exchange: commons.GetEnv("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange),
		})
		if err != nil {
			commons.Logger.Error("RabbitMQ unavailable, recognition events disabled:", err)
		} else {
			defer publisher.Close()
			h.Publisher = publisher
		}
	} else {
		commons.Logger.Info("RABBITMQ_URL not set, recognition events disabled")
	}

	keyHash := commons.GetEnv("API_KEY_HASH")
	if keyHash == "" {
		commons.Logger.Warn("API_KEY_HASH not set, /v1 routes are unauthenticated")
	}
	routes.RegisterRoutes(e, h, middlewares.VerifyAPIKeyMiddleware(keyHash, cryptoInstance))

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
