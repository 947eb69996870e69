package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/hoops-trainer/internal/identity"
	"alcyxob/hoops-trainer/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	corsOrigins []string,
	provider *identity.Provider,
	libraryService service.LibraryService,
	titleService service.TitleService,
	resourceService service.ResourceService,
	planService service.PlanService,
) {
	libraryHandler := NewLibraryHandler(libraryService, titleService)
	resourceHandler := NewResourceHandler(resourceService)
	planHandler := NewPlanHandler(planService)

	router.Use(RequestLogger())
	router.Use(CORSMiddleware(corsOrigins))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(IdentityMiddleware(provider))
	{
		apiV1.GET("/me", func(c *gin.Context) {
			principal, err := getPrincipalFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve principal")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"id":        principal.ID,
				"anonymous": principal.Anonymous,
				"tabId":     c.GetString(ContextTabIDKey),
			})
		})

		// --- Library: videos and exercises ---
		libraryGroup := apiV1.Group("/library")
		{
			libraryGroup.GET("", libraryHandler.GetLibrary)
			libraryGroup.GET("/categories", libraryHandler.GetCategories)
			libraryGroup.GET("/channels", libraryHandler.GetChannels)

			libraryGroup.POST("/videos", libraryHandler.AddVideo)
			libraryGroup.POST("/videos/titles", libraryHandler.UpdateMissingTitles)
			libraryGroup.PUT("/videos/:id", libraryHandler.PutVideo)
			libraryGroup.DELETE("/videos/:id", libraryHandler.DeleteVideo)
			libraryGroup.POST("/videos/:id/title", libraryHandler.UpdateVideoTitle)

			libraryGroup.POST("/exercises", libraryHandler.AddExercise)
			libraryGroup.PUT("/exercises/:id", libraryHandler.PutExercise)
			libraryGroup.DELETE("/exercises/:id", libraryHandler.DeleteExercise)
		}

		// --- Resources ---
		resourceGroup := apiV1.Group("/resources")
		{
			resourceGroup.GET("", resourceHandler.ListResources)
			resourceGroup.POST("", resourceHandler.AddResource)
			resourceGroup.POST("/detect", resourceHandler.DetectResource)
			resourceGroup.PATCH("/:id", resourceHandler.PatchResource)
			resourceGroup.DELETE("/:id", resourceHandler.DeleteResource)
		}

		// --- Training plans ---
		planGroup := apiV1.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.PUT("/:id", planHandler.PutPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.GET("/:id/resolved", planHandler.GetResolvedPlan)
			planGroup.POST("/:id/items", planHandler.AddPlanItem)
			planGroup.DELETE("/:id/items/:itemId", planHandler.RemovePlanItem)
			planGroup.POST("/:id/items/:itemId/move", planHandler.MovePlanItem)
		}
	}
}
