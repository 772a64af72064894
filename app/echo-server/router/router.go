package router

import (
	"offerPilot/internal/middleware"
	"offerPilot/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("/me", handler.Me, middleware.AuthMiddleware())
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations", middleware.AuthMiddleware())
	reco.GET("/panels", handler.Panels)
	reco.GET("/debug", handler.Debug, middleware.AdminOnly())
}

func SetProfileRoutes(api *echo.Group, handler *rest.ProfileHandler) {
	profile := api.Group("/profile", middleware.AuthMiddleware())
	profile.GET("/summary", handler.Summary)
}

func SetupVendorRoutes(api *echo.Group, handler *rest.VendorHandler) {
	vendors := api.Group("/vendors", middleware.AuthMiddleware())

	vendors.GET("", handler.GetAllVendors)
	vendors.GET("/:id", handler.GetVendorByID)
	vendors.POST("", handler.SaveVendor, middleware.AdminOnly())
	vendors.POST("/import", handler.ImportCatalog, middleware.AdminOnly())
	vendors.DELETE("/:id", handler.DeleteVendor, middleware.AdminOnly())

	categories := api.Group("/categories", middleware.AuthMiddleware())
	categories.GET("", handler.GetAllCategories)
}

func SetTransactionRoutes(api *echo.Group, handler *rest.TransactionHandler) {
	txns := api.Group("/transactions", middleware.AuthMiddleware(), middleware.AdminOnly())
	txns.POST("/import", handler.ImportFeed)
	txns.DELETE("", handler.DeleteByUser)
}

func SetRecoAdminRoutes(api *echo.Group, handler *rest.RecoAdminHandler) {
	admin := api.Group("/admin/reco", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
	admin.PUT("/curated", handler.SetCuratedOffers)
}

func SetSavingsRoutes(api *echo.Group, handler *rest.SavingsHandler) {
	api.POST("/redemptions", handler.RecordRedemption, middleware.AuthMiddleware())

	savings := api.Group("/savings", middleware.AuthMiddleware())
	savings.GET("/summary", handler.Summary)
}
