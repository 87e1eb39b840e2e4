package api

import (
	"log"
	"net/http"
	"strings"

	"sitegen_server/internal/sitegen"
	"sitegen_server/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /preview/:id/*filename
//
// Previews are loaded by iframes, which cannot send the owner header, so the
// unguessable project id is the only key.
func (h *APIHandler) Preview(c *gin.Context) {
	projectID := c.Param("id")
	filename := strings.TrimPrefix(c.Param("filename"), "/")
	if filename == "" {
		filename = sitegen.IndexFile
	}

	f, err := h.store.GetFile(c.Request.Context(), projectID, filename)
	if err != nil {
		log.Printf("Preview miss for %s/%s: %v", projectID, filename, err)
		c.String(http.StatusNotFound, "File %s not found", filename)
		return
	}

	contentType := utils.ContentType(f.Filename)
	if f.IsBinary() {
		c.Data(http.StatusOK, contentType, f.ContentBinary)
		return
	}
	c.Data(http.StatusOK, contentType, []byte(f.Content))
}
