package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/Sandanu06/citf-backend-v1/api"
	"github.com/Sandanu06/citf-backend-v1/config"
	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/Sandanu06/citf-backend-v1/storage"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg := config.New()
	setupLogging(cfg)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	log.Info().Str("dbType", config.GetString(cfg, "DB_TYPE", "postgres")).Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "SCHEMA_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		total, err := models.PrintColumnMismatchReport(db, os.Stdout)
		_ = currentDB.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column mismatch report")
		}
		if total > 0 {
			os.Exit(2)
		}
		return
	}

	store, err := newFileStore(cfg)
	if err != nil {
		_ = currentDB.Close()
		log.Fatal().Err(err).Msg("Error initializing file store")
	}

	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, store, cfg)
	if err != nil {
		_ = currentDB.Close()
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	log.Info().Dur("uptime", server.Uptime()).Msg("Server stopped")

	// The pool is drained only after in-flight requests are done with it.
	if err := currentDB.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging(cfg map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.ToLower(config.GetString(cfg, "LOG_FORMAT", "console")) == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// newFileStore picks the upload backend named by STORAGE_BACKEND.
func newFileStore(cfg map[string]string) (storage.FileStore, error) {
	switch backend := strings.ToLower(config.GetString(cfg, "STORAGE_BACKEND", "disk")); backend {
	case "disk":
		return storage.NewDiskStore(config.GetString(cfg, "UPLOAD_DIR", "uploads"))
	case "minio":
		return storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  config.GetString(cfg, "MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: config.GetString(cfg, "MINIO_ACCESS_KEY", ""),
			SecretKey: config.GetString(cfg, "MINIO_SECRET_KEY", ""),
			Bucket:    config.GetString(cfg, "MINIO_BUCKET", "uploads"),
			UseSSL:    config.GetBool(cfg, "MINIO_USE_SSL", false),
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", backend)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
