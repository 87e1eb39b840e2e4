package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/preview/:id/*filename", h.Preview)

	owned := router.Group("/", RequireOwner())
	owned.POST("/generate", h.GenerateSite)

	projects := owned.Group("/api/projects")
	{
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PATCH("/:id", h.RenameProject)
		projects.GET("/:id/files", h.ListFiles)
		projects.GET("/:id/file", h.ReadFile)
		projects.POST("/:id/file", h.SaveFile)
		projects.DELETE("/:id/file", h.DeleteFile)
		projects.POST("/:id/images", h.UploadImages)
		projects.GET("/:id/download", h.DownloadProject)
	}
}
