// Package web embeds the single-page upload UI served at the site root.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var static embed.FS

// Index serves the embedded identification page.
func Index(c *gin.Context) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
