package infrastructure

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Agurato/costars/internal/model"
)

type MongoDB struct {
	client *mongo.Client

	moviesColl *mongo.Collection
}

// NewMongoDB connects to the database and checks that it can be reached
func NewMongoDB(ctx context.Context, dbUser, dbPassword, dbURL, dbPort, dbName string) (*MongoDB, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", dbURL, dbPort)
	if dbUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s", dbUser, dbPassword, dbURL, dbPort)
	}
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	if err = mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("could not reach MongoDB: %w", err)
	}
	log.Info().Str("host", dbURL).Str("port", dbPort).Str("database", dbName).Msg("Connected to MongoDB")

	return &MongoDB{
		client:     mongoClient,
		moviesColl: mongoClient.Database(dbName).Collection("movies"),
	}, nil
}

// Close closes the MongoDB connection
func (m MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// GetMovies returns the stored movies in insertion order.
// A database error gives an empty dataset.
func (m MongoDB) GetMovies(ctx context.Context) []model.Movie {
	movies, err := m.getMovies(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not load movie dataset from MongoDB")
		return nil
	}
	return movies
}

func (m MongoDB) getMovies(ctx context.Context) (movies []model.Movie, err error) {
	// ObjectIDs are generated in insertion order
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	moviesCur, err := m.moviesColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving movies from DB: %w", err)
	}
	defer moviesCur.Close(ctx)
	for moviesCur.Next(ctx) {
		var movie model.Movie
		if err = moviesCur.Decode(&movie); err != nil {
			return nil, fmt.Errorf("error while decoding movie from DB: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, moviesCur.Err()
}

// ReplaceMovies removes every stored movie and inserts the new ones, in order
func (m MongoDB) ReplaceMovies(ctx context.Context, movies []model.Movie) error {
	del, err := m.moviesColl.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("could not remove previous movies: %w", err)
	}
	log.Debug().Int64("movies", del.DeletedCount).Msg("Removed previous dataset from MongoDB")

	if len(movies) == 0 {
		return nil
	}
	docs := make([]any, 0, len(movies))
	for _, movie := range movies {
		docs = append(docs, movie)
	}
	if _, err = m.moviesColl.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("could not insert movies: %w", err)
	}
	return nil
}
