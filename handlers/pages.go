package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the single-page front end. Routing between pages happens client
// side; the server only gates access through middleware.PageGate.
type PageHandler struct {
	StaticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{StaticDir: staticDir}
}

func (h *PageHandler) index() (string, bool) {
	if h.StaticDir == "" {
		return "", false
	}
	p := filepath.Join(h.StaticDir, "index.html")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func (h *PageHandler) ServePage(c *gin.Context) {
	if p, ok := h.index(); ok {
		c.File(p)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": c.Request.URL.Path})
}
