package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/samurai100996/property-preview/handlers"
	"github.com/samurai100996/property-preview/middleware"
	"github.com/samurai100996/property-preview/storage"
)

func RegisterRoutes(e *echo.Echo, store *storage.DiskStore) {
	e.GET("/health", handlers.HealthCheck)

	uploadController := handlers.NewUploadController(store)
	propertyController := handlers.NewPropertyController(store, uploadController.BatchBusy)
	enquiryController := handlers.NewEnquiryController()
	authController := handlers.NewAuthController()

	api := e.Group("/api")
	api.GET("/properties", propertyController.ListProperties)
	api.GET("/properties/featured", propertyController.FeaturedProperties)
	api.GET("/properties/:id", propertyController.GetProperty)
	api.POST("/enquiries", enquiryController.CreateEnquiry)

	admin := api.Group("/admin")
	admin.POST("/login", authController.Login)

	protected := admin.Group("", middleware.JWTMiddleware())
	protected.GET("/session", authController.Session)
	protected.POST("/properties", propertyController.CreateProperty)
	protected.DELETE("/properties/:id", propertyController.DeleteProperty)
	protected.GET("/enquiries", enquiryController.ListEnquiries)
	protected.POST("/uploads", uploadController.UploadBatch)
	protected.GET("/uploads/:batch/progress", uploadController.Progress)
	protected.GET("/uploads/:batch/files", uploadController.ListFiles)
	protected.DELETE("/uploads/:batch/files/:index", uploadController.RemoveFile)
}
