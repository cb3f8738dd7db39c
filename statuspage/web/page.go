// Package web serves the status page shown in browsers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Config ...
type Config struct {
	// StatusURL is the URL the browser polls for the server status.
	StatusURL    string
	PollInterval time.Duration
}

// pageData is passed to index.html.
type pageData struct {
	StatusURL    string
	PollInterval int64
	Panel        view.Panel
}

// Register adds the page and its assets to the router.
func Register(router *gin.Engine, conf Config) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(static))
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", pageData{
			StatusURL:    conf.StatusURL,
			PollInterval: conf.PollInterval.Milliseconds(),
			// The page always starts out loading; the script takes over from there.
			Panel: view.Render(view.State{Loading: true}),
		})
	})
	return nil
}
