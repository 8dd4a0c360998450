package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/api"
	"github.com/forkful/forkful-backend/internal/middleware"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipes  *api.RecipeHandler
	Fridge   *api.FridgeHandler
	Shopping *api.ShoppingHandler
	Profile  *api.ProfileHandler
	Health   *api.HealthHandler
}

// Setup configures the application routes. uploadsDir is served statically
// at /uploads.
func Setup(h Handlers, validator middleware.TokenValidator, uploadsDir string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
	}))

	router.Static("/uploads", uploadsDir)
	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	// Public recipe reads
	v1.GET("/recipes", h.Recipes.ListRecipes)
	v1.POST("/recipes/:id/view", h.Recipes.IncrementViews)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		recipes := protected.Group("/recipes")
		{
			recipes.GET("/my-recipes", h.Recipes.ListMyRecipes)
			recipes.GET("/search-by-ingredients", h.Recipes.SearchByIngredients)
			recipes.GET("/suggestions", h.Recipes.Suggestions)
			recipes.POST("", h.Recipes.CreateRecipe)
			recipes.PATCH("/:id", h.Recipes.UpdateRecipe)
			recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
			recipes.POST("/:id/like", h.Recipes.IncrementLikes)
			recipes.POST("/:id/image", h.Recipes.UploadImage)
		}

		fridge := protected.Group("/fridge-ingredients")
		{
			fridge.GET("", h.Fridge.List)
			fridge.POST("", h.Fridge.Create)
			fridge.POST("/multiple", h.Fridge.AddMultiple)
			fridge.GET("/expired", h.Fridge.ListExpired)
			fridge.GET("/:id", h.Fridge.Get)
			fridge.PATCH("/:id", h.Fridge.Update)
			fridge.PATCH("/:id/expire", h.Fridge.MarkAsExpired)
			fridge.DELETE("/:id", h.Fridge.Delete)
		}

		shopping := protected.Group("/shopping-lists")
		{
			shopping.GET("", h.Shopping.List)
			shopping.POST("", h.Shopping.Create)
			shopping.POST("/from-recipe/:recipeId", h.Shopping.GenerateFromRecipe)
			shopping.GET("/:id", h.Shopping.Get)
			shopping.PATCH("/:id", h.Shopping.Update)
			shopping.DELETE("/:id", h.Shopping.Delete)
			shopping.PATCH("/:id/complete", h.Shopping.MarkAsCompleted)
			shopping.POST("/:id/items", h.Shopping.AddItem)
			shopping.PATCH("/:id/items/:itemId", h.Shopping.UpdateItem)
			shopping.DELETE("/:id/items/:itemId", h.Shopping.RemoveItem)
			shopping.PATCH("/:id/items/:itemId/toggle", h.Shopping.ToggleItem)
		}

		profile := protected.Group("/users/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PATCH("", h.Profile.UpdateProfile)
			profile.PATCH("/preferences", h.Profile.UpdatePreferences)
			profile.PATCH("/avatar", h.Profile.UpdateAvatar)
		}
	}

	// The recipe detail route is registered last so fixed paths like
	// my-recipes resolve first.
	v1.GET("/recipes/:id", h.Recipes.GetRecipe)

	return router
}
