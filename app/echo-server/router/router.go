package router

import (
	"refrescoBot/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")

	sessions.POST("", handler.StartSession)
	sessions.POST("/:id/answers", handler.RecordAnswer)
	sessions.GET("/:id/recommendations", handler.GetRecommendations)
	sessions.POST("/:id/more-options", handler.MoreOptions)
	sessions.POST("/:id/ratings", handler.RateBeverage)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	beverages := api.Group("/beverages")
	beverages.GET("", handler.GetAllBeverages)
	beverages.GET("/:id", handler.GetBeverageByID)

	api.GET("/status", handler.Status)

	admin := api.Group("/admin")
	admin.POST("/classify", handler.Classify)
	admin.POST("/retrain", handler.Retrain)
}
