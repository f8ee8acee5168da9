package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/infrastructure"
)

const EnvTMDBAPIKey = "TMDB_API_KEY"

var cli struct {
	Output string `short:"o" default:"latest_movies.json" type:"path" help:"File the dataset is written to."`
	List   string `enum:"now_playing,popular" default:"now_playing" help:"TMDB movie list (${enum})."`
	Pages  int    `default:"5" help:"Number of list pages to fetch (20 movies per page)."`
	Cast   int    `default:"15" help:"Number of credited actors kept per movie, 0 keeps all of them."`
}

func main() {
	godotenv.Load()
	kctx := kong.Parse(&cli,
		kong.Name("costars-dataset"),
		kong.Description("Build a movie dataset from TMDB."))

	metadata, err := infrastructure.NewMetadataWrapper(os.Getenv(EnvTMDBAPIKey))
	kctx.FatalIfErrorf(err)

	movies, err := metadata.FetchMovies(cli.List, cli.Pages, cli.Cast)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(infrastructure.WriteMoviesFile(cli.Output, movies))
	log.Info().Int("movies", len(movies)).Str("path", cli.Output).Msg("Dataset written")
}
