package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/config"
	v1 "github.com/hearthbudget/backend/internal/controllers/v1"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/processor"
	"github.com/hearthbudget/backend/internal/router"
	"github.com/hearthbudget/backend/internal/scheduler"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()

	location, err := cfg.Location()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate all models
	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	clock := processor.LocationClock{Location: location}
	v1.SetClock(clock)

	service := processor.New(models.DB, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.EnableScheduler {
		if err := scheduler.RegisterMetrics(); err != nil {
			log.Fatal().Msg(err.Error())
		}

		s := scheduler.New(service, location,
			scheduler.Schedule{Hour: cfg.BillsHour, Minute: cfg.BillsMinute},
			scheduler.Schedule{Hour: cfg.IncomeHour, Minute: cfg.IncomeMinute},
		)
		go s.Run(ctx)
	}

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"))

	// Stop the scheduler on SIGINT and SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
