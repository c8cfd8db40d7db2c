package routes

import (
	"Recipe-Hub-Backend/internal/api/handlers"
	"Recipe-Hub-Backend/internal/middleware"
	"Recipe-Hub-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	ReportHandler    handlers.ReportHandler
	AssistantHandler handlers.AssistantHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Reports()
	c.Assistant()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("", c.RecipeHandler.SearchRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("/favorites", c.RecipeHandler.GetFavorites)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	recipes.Get("/:id/pdf", c.RecipeHandler.ExportRecipePDF)
	recipes.Post("/:id/favorite", c.RecipeHandler.ToggleFavorite)
	recipes.Post("/:id/image", c.RecipeHandler.UploadRecipeImage)

	// completion tracking while cooking
	recipes.Post("/:id/ingredients/:ingredientID/toggle", c.RecipeHandler.ToggleIngredient)
	recipes.Post("/:id/steps/:stepID/toggle", c.RecipeHandler.ToggleStep)
}

// Reports is the JSON relay surface consumed by another service; it carries
// no session, so the group stays outside the auth middleware.
func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports")

	reports.Post("", c.ReportHandler.SubmitReport)
	reports.Get("", c.ReportHandler.GetReportHistory)
	reports.Get("/:id/pdf", c.ReportHandler.ExportReportPDF)
}

func (c *Config) Assistant() {
	assistant := c.App.Group("/api/v1/assistant", c.Middleware.AuthMiddleware(c.JWTService))
	assistant.Post("/chat", c.AssistantHandler.Ask)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
