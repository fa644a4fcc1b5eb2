package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/synesthesie/gallery/internal/config"
	"github.com/synesthesie/gallery/internal/middleware"
	"github.com/synesthesie/gallery/internal/services"
)

// Dependencies groups everything the router needs.
type Dependencies struct {
	Config         *config.Config
	Redis          *redis.Client
	AuthService    *services.AuthService
	AuditService   *services.AuditService
	GalleryService *services.GalleryService
	ImageService   *services.ImageService
}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(deps.Redis, cfg))

	authHandler := NewAuthHandler(deps.AuthService)
	galleryHandler := NewGalleryHandler(deps.GalleryService, deps.ImageService, cfg.GalleryPageSize)
	imageHandler := NewImageHandler(deps.ImageService)
	adminHandler := NewAdminHandler(deps.AuditService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.Auth(deps.AuthService), authHandler.Logout)
		}

		// Reads are public
		api.GET("/galleries", galleryHandler.ListGalleries)
		api.GET("/galleries/:id", galleryHandler.GetGallery)
		api.GET("/images", imageHandler.GetAllImages)
		api.GET("/images/:id", imageHandler.GetImage)

		writes := api.Group("/galleries")
		writes.Use(middleware.Auth(deps.AuthService))
		writes.Use(middleware.WriteRateLimit(deps.AuditService, deps.Redis, "gallery_", cfg.GalleryWriteLimit, cfg.GalleryWriteWindowMinutes))
		{
			writes.POST("", galleryHandler.CreateGallery)
			writes.PUT("/:id", galleryHandler.ReplaceGallery)
			writes.PATCH("/:id", galleryHandler.ReplaceGallery)
			writes.DELETE("/:id", galleryHandler.DeleteGallery)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(deps.AuthService))
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/audit/logs", adminHandler.GetAuditLogs)
		}
	}

	return router
}
