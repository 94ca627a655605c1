package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAFallback serves the frontend build: real files when they exist,
// index.html for any other GET so client-side routes survive a reload.
func SPAFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		clean := filepath.Clean("/" + c.Request.URL.Path)
		if clean != "/" {
			candidate := filepath.Join(dir, strings.TrimPrefix(clean, "/"))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				c.File(candidate)
				return
			}
		}
		c.File(index)
	}
}
