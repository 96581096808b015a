package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/curator/internal/config"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.Service.Name,
			"version": cfg.Service.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(handler.metricsHandler))

	api := router.Group("/api")
	{
		videos := api.Group("/videos")
		{
			videos.GET("/metadata", handler.GetMetadata)     // GET /api/videos/metadata?url=
			videos.GET("/search", handler.SearchVideos)      // GET /api/videos/search?query=&maxResults=
			videos.GET("/transcript", handler.GetTranscript) // GET /api/videos/transcript?url=
			videos.POST("/verify", handler.VerifyVideo)      // POST /api/videos/verify
		}

		library := api.Group("/library")
		{
			library.GET("", handler.ListLibrary)         // GET /api/library
			library.POST("", handler.AddLibraryItem)     // POST /api/library
			library.POST("/commit", handler.CommitVideo) // POST /api/library/commit
			library.PUT("/:id", handler.UpdateLibraryItem)
			library.DELETE("/:id", handler.DeleteLibraryItem)
		}
	}
}
