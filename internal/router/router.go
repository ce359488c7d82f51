package router

import (
	"net/http"
	"time"

	"gala/config"
	"gala/internal/domain"
	"gala/internal/handler"
	"gala/internal/middleware"
	"gala/internal/repository"
	"gala/internal/schema"
	"gala/internal/service"
	"gala/internal/ws"
	"gala/pkg/mailer"
	"gala/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators built by main.
type Deps struct {
	Log            *zap.Logger
	Schemas        *schema.Registry
	Store          storage.Store
	Mailer         mailer.Sender
	Hub            *ws.Hub
	ContactLimiter *middleware.InMemoryRateLimiter
}

func Setup(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Log
	if deps.Hub == nil {
		deps.Hub = ws.NewHub()
	}
	if deps.ContactLimiter == nil {
		deps.ContactLimiter = middleware.NewInMemoryRateLimiter(cfg.Server.ContactRateLimit, 15*time.Minute)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(cfg.Server)))

	// Repositories
	sectionRepo := repository.NewSectionRepository(db)
	sectorRepo := repository.NewSectorRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	sectionSvc := service.NewSectionService(sectionRepo, deps.Schemas, deps.Hub, service.SectionOptions{
		RequireVersion: cfg.Sections.RequireVersion,
		DefaultLocale:  cfg.Sections.DefaultLocale,
	}, log)
	contentSvc := service.NewContentService(sectionRepo, cfg.Sections.DefaultLocale)
	sectorSvc := service.NewSectorService(sectorRepo)
	adminSvc := service.NewAdminAuthService(cfg, adminRepo)
	authSvc := service.NewAuthService(cfg, userRepo)
	uploadSvc := service.NewUploadService(deps.Store, cfg.Upload.MaxImageMB, cfg.Upload.MaxPixels, log)
	emailSvc := service.NewEmailService(deps.Mailer, cfg.Mail, cfg.Upload.MaxResumeMB, log)

	// Handlers
	sectionHandler := handler.NewSectionHandler(sectionSvc, log)
	contentHandler := handler.NewContentHandler(contentSvc, log)
	sectorHandler := handler.NewSectorHandler(sectorSvc, log)
	adminHandler := handler.NewAdminHandler(adminSvc, &cfg.JWT, log)
	authHandler := handler.NewAuthHandler(authSvc, &cfg.JWT, log)
	uploadHandler := handler.NewUploadHandler(uploadSvc, log)
	emailHandler := handler.NewEmailHandler(emailSvc, log)

	adminOnly := middleware.AdminRequired(adminSvc)

	r.GET("/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	uploads := r.Group(cfg.Upload.PublicPath, middleware.StaticCache())
	uploads.Static("/", cfg.Upload.Root)

	r.GET("/ws/sections", ws.UpgradeSectionsWS(adminSvc, deps.Hub, log))

	api := r.Group("/api")
	{
		sections := api.Group("/sections")
		sections.GET("", sectionHandler.List)
		sections.GET("/name/:sectionName", sectionHandler.GetByName)
		sections.GET("/:id", sectionHandler.Get)
		sections.POST("", adminOnly, sectionHandler.Create)
		sections.PUT("/:id", adminOnly, sectionHandler.Update)
		sections.DELETE("/:id", adminOnly, sectionHandler.Delete)
		sections.GET("/:id/form", adminOnly, sectionHandler.Form)
		sections.PATCH("/:id/fields", adminOnly, sectionHandler.EditFields)

		api.GET("/content", contentHandler.GetMany)
		api.GET("/content/:sectionName", contentHandler.Get)

		items := api.Group("/sector-items")
		items.GET("", sectorHandler.ListItems)
		items.GET("/:id", sectorHandler.GetItem)
		items.POST("", adminOnly, sectorHandler.CreateItem)
		items.PUT("/:id", adminOnly, sectorHandler.UpdateItem)
		items.DELETE("/:id", adminOnly, sectorHandler.DeleteItem)

		services := api.Group("/sector-item-services")
		services.GET("", sectorHandler.ListServices)
		services.GET("/:id", sectorHandler.GetService)
		services.POST("", adminOnly, sectorHandler.CreateService)
		services.PUT("/:id", adminOnly, sectorHandler.UpdateService)
		services.DELETE("/:id", adminOnly, sectorHandler.DeleteService)

		details := api.Group("/sector-item-service-details")
		details.GET("", sectorHandler.ListDetails)
		details.GET("/:id", sectorHandler.GetDetail)
		details.POST("", adminOnly, sectorHandler.CreateDetail)
		details.PUT("/:id", adminOnly, sectorHandler.UpdateDetail)
		details.DELETE("/:id", adminOnly, sectorHandler.DeleteDetail)

		admin := api.Group("/admin")
		admin.POST("/login", adminHandler.Login)
		admin.POST("/logout", adminHandler.Logout)
		admin.GET("/profile", adminOnly, adminHandler.Profile)
		admin.POST("/create", adminOnly, adminHandler.Create)
		admin.GET("/list", adminOnly, middleware.RequireRole(domain.RoleSuperAdmin), adminHandler.List)
		admin.PATCH("/:id/status", adminOnly, adminHandler.SetStatus)

		authGroup := api.Group("/auth")
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", middleware.UserRequired(authSvc), authHandler.Logout)

		users := api.Group("/users", adminOnly)
		users.GET("", authHandler.ListUsers)
		users.GET("/:id", authHandler.GetUser)
		users.DELETE("/:id", authHandler.DeleteUser)

		upload := api.Group("/upload", adminOnly)
		upload.POST("/image", uploadHandler.UploadImage)
		upload.DELETE("/image/*filename", uploadHandler.DeleteImage)

		api.POST("/email/contact", middleware.RateLimit(deps.ContactLimiter), emailHandler.Contact)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return r
}

func corsConfig(s config.ServerConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-Match", "X-Request-ID"},
		ExposeHeaders:    []string{"ETag", "X-Request-ID"},
		AllowCredentials: s.CORSCredentials,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range s.CORSOrigins {
		if o == "*" {
			// reflect the caller's origin so credentialed requests still work
			cc.AllowOriginFunc = func(string) bool { return true }
			return cc
		}
	}
	cc.AllowOrigins = s.CORSOrigins
	return cc
}
