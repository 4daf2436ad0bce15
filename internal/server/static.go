package server

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// notFound answers unknown paths. When dir holds a built client, GET
// requests outside /api get the file at that path or index.html so the
// client router can take over.
func notFound(dir string, logger *slog.Logger) gin.HandlerFunc {
	index := ""
	if dir != "" {
		candidate := filepath.Join(dir, "index.html")
		if _, err := os.Stat(candidate); err == nil {
			index = candidate
			logger.Info("serving static assets", "dir", dir)
		} else {
			logger.Warn("static assets not found, serving API only", "dir", dir)
		}
	}

	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		method := c.Request.Method
		if index == "" || strings.HasPrefix(urlPath, apiPrefix) || (method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	}
}
