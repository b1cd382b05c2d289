package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bolhadev/blog-backend/api"
	"github.com/bolhadev/blog-backend/cache"
	"github.com/bolhadev/blog-backend/config"
	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/models"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogging(cfg)
	log.Info().Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = currentDB.Ping(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	if config.GetBool(cfg, "AUTO_MIGRATE", false) {
		if err := currentDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
		log.Info().Msg("Database migrated")
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		if _, err := models.GenerateColumnMismatchReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	responseCache, err := cache.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to redis")
	}
	if responseCache == nil {
		log.Info().Msg("REDIS_ADDR not set, response cache disabled")
	} else {
		defer responseCache.Close()
	}

	// both the listener and the signal handler may report
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, cfg, responseCache)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(cfg, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
