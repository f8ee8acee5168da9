package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/business"
	"github.com/Agurato/costars/internal/infrastructure"
	"github.com/Agurato/costars/internal/service/server"
)

// Environment variables names
const (
	EnvDatasetSource = "DATASET_SOURCE" // file, http, mongodb or sqlite
	EnvDatasetPath   = "DATASET_PATH"
	EnvDatasetURL    = "DATASET_URL"
	EnvCachePath     = "CACHE_PATH"
	EnvDBURL         = "DB_URL"
	EnvDBPort        = "DB_PORT"
	EnvDBName        = "DB_NAME"
	EnvDBUser        = "DB_USER"
	EnvDBPassword    = "DB_PASSWORD"
	EnvSQLitePath    = "SQLITE_PATH"
	EnvListenAddr    = "LISTEN_ADDR"
	EnvSearchTimeout = "SEARCH_TIMEOUT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogPretty     = "LOG_PRETTY"
)

const (
	defaultDatasetPath   = "latest_movies.json"
	defaultCachePath     = "cache"
	defaultSQLitePath    = "costars.db"
	defaultListenAddr    = ":8080"
	defaultSearchTimeout = 10 * time.Second
)

func main() {
	godotenv.Load()
	setupLogger()

	provider, closer := newMovieProvider()
	defer closer.Close()

	searchTimeout := defaultSearchTimeout
	if v := os.Getenv(EnvSearchTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Err(err).Str("value", v).Msg("Invalid " + EnvSearchTimeout)
		}
		searchTimeout = d
	}

	sm := business.NewSearchManager(provider)
	router := server.NewServer(server.NewSearchHandler(sm, searchTimeout))

	addr := valueOrDefault(EnvListenAddr, defaultListenAddr)
	log.Info().Str("addr", addr).Msg("Starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogger() {
	level, err := zerolog.ParseLevel(valueOrDefault(EnvLogLevel, zerolog.DebugLevel.String()))
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if os.Getenv(EnvLogPretty) == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = log.Output(os.Stdout)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

// newMovieProvider creates the dataset provider selected by DATASET_SOURCE
func newMovieProvider() (business.MovieProvider, io.Closer) {
	noop := closerFunc(func() error { return nil })

	source := valueOrDefault(EnvDatasetSource, "file")
	log.Info().Str("source", source).Msg("Loading movie dataset from " + source)

	switch source {
	case "file":
		return infrastructure.NewFileDataset(valueOrDefault(EnvDatasetPath, defaultDatasetPath)), noop
	case "http":
		c, err := infrastructure.NewCache(valueOrDefault(EnvCachePath, defaultCachePath))
		if err != nil {
			log.Fatal().Err(err).Msg("Could not create cache")
		}
		return infrastructure.NewHTTPDataset(os.Getenv(EnvDatasetURL), c), noop
	case "mongodb":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err := infrastructure.NewMongoDB(ctx,
			os.Getenv(EnvDBUser),
			os.Getenv(EnvDBPassword),
			os.Getenv(EnvDBURL),
			os.Getenv(EnvDBPort),
			os.Getenv(EnvDBName))
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open MongoDB")
		}
		return db, closerFunc(func() error { return db.Close(context.Background()) })
	case "sqlite":
		db, err := infrastructure.NewSQLite(valueOrDefault(EnvSQLitePath, defaultSQLitePath))
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open SQLite")
		}
		return db, db
	}

	log.Fatal().Str("source", source).Msg("Unknown " + EnvDatasetSource)
	return nil, noop
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
