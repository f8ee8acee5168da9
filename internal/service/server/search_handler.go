package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/business"
)

// actorsLimit is the number of names returned for autocompletion
const actorsLimit = 20

type Searcher interface {
	ShortestPath(ctx context.Context, from, to string) (business.SearchResult, error)
	BoundedPaths(ctx context.Context, from, to string) (business.SearchResult, error)
	Actors(ctx context.Context, prefix string, limit int) []string
}

type SearchHandler struct {
	Searcher
	timeout time.Duration
}

// NewSearchHandler creates the handler. Searches taking longer than timeout are
// interrupted, a zero timeout only relies on the request's context.
func NewSearchHandler(s Searcher, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		Searcher: s,
		timeout:  timeout,
	}
}

type searchFunc func(ctx context.Context, from, to string) (business.SearchResult, error)

// Error404 displays the 404 page
func (sh SearchHandler) Error404(c *gin.Context) {
	c.HTML(http.StatusNotFound, "pages/404.go.html", gin.H{
		"title": "404 - Not Found",
	})
}

// GETIndex displays the search form
func (sh SearchHandler) GETIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/index.go.html", gin.H{
		"title":   "costars",
		"maxHops": business.DefaultMaxHops,
	})
}

// GETShortest displays the shortest path between two actors
func (sh SearchHandler) GETShortest(c *gin.Context) {
	sh.renderSearch(c, "shortest path", sh.Searcher.ShortestPath)
}

// GETPaths displays a few paths of at most six hops between two actors
func (sh SearchHandler) GETPaths(c *gin.Context) {
	sh.renderSearch(c, "six degrees", sh.Searcher.BoundedPaths)
}

// APIShortest returns the shortest path between two actors as JSON
func (sh SearchHandler) APIShortest(c *gin.Context) {
	sh.apiSearch(c, sh.Searcher.ShortestPath)
}

// APIPaths returns a few paths of at most six hops between two actors as JSON
func (sh SearchHandler) APIPaths(c *gin.Context) {
	sh.apiSearch(c, sh.Searcher.BoundedPaths)
}

// APIActors returns the actor names starting with the "prefix" query parameter
func (sh SearchHandler) APIActors(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prefix is required"})
		return
	}
	actors := sh.Searcher.Actors(c.Request.Context(), prefix, actorsLimit)
	if actors == nil {
		actors = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"actors": actors})
}

func (sh SearchHandler) renderSearch(c *gin.Context, mode string, search searchFunc) {
	result, status, err := sh.search(c, search)
	obj := gin.H{
		"title":  mode,
		"mode":   mode,
		"result": result,
	}
	if status >= http.StatusInternalServerError {
		obj["error"] = err.Error()
	}
	c.HTML(status, "pages/result.go.html", obj)
}

func (sh SearchHandler) apiSearch(c *gin.Context, search searchFunc) {
	result, status, err := sh.search(c, search)
	if status >= http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, result)
}

// search runs a search with the "from" and "to" query parameters
func (sh SearchHandler) search(c *gin.Context, search searchFunc) (business.SearchResult, int, error) {
	ctx := c.Request.Context()
	if sh.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sh.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := search(ctx, c.Query("from"), c.Query("to"))
	status := statusFromError(err)

	logEvent := log.Debug()
	if status >= http.StatusInternalServerError {
		logEvent = log.Error()
	}
	logEvent.Err(err).
		Str("from", result.From).
		Str("to", result.To).
		Str("kind", string(result.Kind)).
		Dur("duration", time.Since(start)).
		Msg("Search done")

	return result, status, err
}

// statusFromError maps a search error to an HTTP status.
// Not finding a path is a valid answer.
func statusFromError(err error) int {
	switch {
	case err == nil, errors.Is(err, business.ErrNoPathFound):
		return http.StatusOK
	case errors.Is(err, business.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, business.ErrActorNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
