package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/business"
	"github.com/Agurato/costars/internal/infrastructure"
)

// Environment variables names
const (
	EnvDBURL      = "DB_URL"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvSQLitePath = "SQLITE_PATH"
)

var cli struct {
	Dataset  string        `arg:"" type:"existingfile" help:"JSON movie dataset to import."`
	Target   string        `enum:"sqlite,mongodb" default:"sqlite" help:"Store to import into (${enum})."`
	Watch    bool          `help:"Keep watching the dataset and import it again when it changes."`
	Interval time.Duration `default:"1s" help:"Polling interval when watching."`
}

func main() {
	godotenv.Load()
	kctx := kong.Parse(&cli,
		kong.Name("costars-import"),
		kong.Description("Import a movie dataset into the costars store."))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	target, closeTarget, err := openTarget(ctx, cli.Target)
	kctx.FatalIfErrorf(err)
	defer closeTarget()

	importer := business.NewDatasetImporter(infrastructure.NewFileDataset(cli.Dataset), target)
	n, err := importer.Import(ctx)
	kctx.FatalIfErrorf(err)
	log.Info().Int("movies", n).Str("target", cli.Target).Str("dataset", cli.Dataset).Msg("Dataset imported")

	if !cli.Watch {
		return
	}
	dw, err := business.NewDatasetWatcher(cli.Dataset, importer)
	kctx.FatalIfErrorf(err)
	log.Info().Str("dataset", cli.Dataset).Msg("Watching dataset")
	if err = dw.Run(ctx, cli.Interval); err != nil {
		log.Error().Err(err).Msg("Dataset watcher stopped")
	}
}

// openTarget opens the store the dataset is imported into
func openTarget(ctx context.Context, target string) (business.MovieReplacer, func(), error) {
	if target == "mongodb" {
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err := infrastructure.NewMongoDB(connectCtx,
			os.Getenv(EnvDBUser),
			os.Getenv(EnvDBPassword),
			os.Getenv(EnvDBURL),
			os.Getenv(EnvDBPort),
			os.Getenv(EnvDBName))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close(context.Background()) }, nil
	}

	path := os.Getenv(EnvSQLitePath)
	if path == "" {
		path = "costars.db"
	}
	db, err := infrastructure.NewSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}
