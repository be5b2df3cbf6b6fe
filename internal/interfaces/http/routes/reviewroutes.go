package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/review"
	"github.com/masterly-ai/masterly/internal/interfaces/http/middleware"
)

type ReviewRouteConfig struct {
	ReviewHandler  *review.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupReviewRoutes(engine *gin.Engine, config *ReviewRouteConfig) {
	reviews := engine.Group("/api/review")
	reviews.Use(config.AuthMiddleware.RequireAuth())
	{
		reviews.GET("/due/count", config.ReviewHandler.GetDueCount)
		reviews.GET("/due", config.ReviewHandler.GetDueQuestions)
		reviews.POST("/answers", config.ReviewHandler.RecordAnswer)
		reviews.GET("/stats", config.ReviewHandler.GetUserStats)
	}

	materials := engine.Group("/api/materials")
	materials.Use(config.AuthMiddleware.RequireAuth())
	{
		materials.GET("/:id/questions", config.ReviewHandler.GetMaterialQuestions)
		materials.POST("/:id/questions", config.ReviewHandler.SaveQuestions)
		materials.DELETE("/:id", config.ReviewHandler.DeleteMaterial)
	}
}
