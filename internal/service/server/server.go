package server

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templatesFS embed.FS

// NewServer initializes the router
func NewServer(searchHandler *SearchHandler) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies(nil)

	// Add template functions and load templates
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"title": cases.Title(language.English).String,
	}
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*/*.go.html")))

	// 404
	router.NoRoute(searchHandler.Error404)

	router.GET("/", searchHandler.GETIndex)
	router.GET("/search/shortest", searchHandler.GETShortest)
	router.GET("/search/paths", searchHandler.GETPaths)

	api := router.Group("/api")
	api.GET("/shortest", searchHandler.APIShortest)
	api.GET("/paths", searchHandler.APIPaths)
	api.GET("/actors", searchHandler.APIActors)

	return router
}
