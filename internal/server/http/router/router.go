package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ward3d/wardprints/internal/server/http/handlers"
	"github.com/ward3d/wardprints/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	generationHandler := handlers.NewGenerationHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/uploads", generationHandler.Upload)
	userAuth.POST("/generations", generationHandler.Start)
	userAuth.GET("/generations", generationHandler.List)
	userAuth.GET("/generations/:id", generationHandler.Get)
	userAuth.POST("/orders", orderHandler.Place)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:id", orderHandler.Track)
	userAuth.PATCH("/orders/:id/scale", orderHandler.AdjustScale)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.StaffOnly(facade))
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/:id/status", adminHandler.ChangeStatus)
	admin.POST("/orders/:id/override", adminHandler.Override)
	admin.GET("/orders/:id/audit", adminHandler.Audit)
	admin.GET("/customers", adminHandler.Customers)
	admin.GET("/customers/:id", adminHandler.Customer)
	admin.POST("/customers/:id/disable", adminHandler.DisableCustomer)
	admin.GET("/models", adminHandler.Models)
	admin.GET("/stats", adminHandler.Stats)

	return engine
}
