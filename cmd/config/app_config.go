package config

import (
	"Recipe-Hub-Backend/internal/api/handlers"
	"Recipe-Hub-Backend/internal/api/routes"
	"Recipe-Hub-Backend/internal/middleware"
	"Recipe-Hub-Backend/internal/utils"
	"Recipe-Hub-Backend/internal/utils/storage"
	"Recipe-Hub-Backend/pkg/assistant"
	"Recipe-Hub-Backend/pkg/jwt"
	"Recipe-Hub-Backend/pkg/pdf"
	"Recipe-Hub-Backend/pkg/recipe"
	"Recipe-Hub-Backend/pkg/report"
	"Recipe-Hub-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	renderer := pdf.NewRenderer()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	reportRepository := report.NewReportRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, renderer, s3)
	reportService := report.NewReportService(reportRepository, renderer)
	assistantService := assistant.NewAssistantService(recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reportHandler := handlers.NewReportHandler(reportService)
	assistantHandler := handlers.NewAssistantHandler(assistantService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		ReportHandler:    reportHandler,
		AssistantHandler: assistantHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
