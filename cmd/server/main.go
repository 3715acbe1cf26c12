package main

import (
	"fmt"
	stdlog "log"
	"net/http"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/auth"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/config"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/database"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/handler"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/logger"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/migration"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/joana-nicolaasponder/backlog-explorer-sub001/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Backlog Explorer API
// @version         1.0
// @description     This is the API for the Backlog Explorer game-library tracker.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		stdlog.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLog.Sync()

	// Connect to the database
	database.Connect(cfg.DatabaseURL)

	igdb := provider.NewIGDBClient(cfg.IGDBClientID, cfg.IGDBToken, cfg.SearchLimit)
	rawg := provider.NewRAWGClient(cfg.RAWGAPIKey, cfg.SearchLimit)
	migrator := migration.NewService(database.DB, igdb, zapLog,
		migration.MatchOptions{MinExactLength: cfg.MatchMinExactLength})
	handler.Setup(migrator, igdb, rawg, zapLog)

	router := gin.Default()
	router.Use(logger.RequestID())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
		}

		// Provider search (protected)
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(auth.AuthMiddleware())
		{
			gameRoutes.GET("/search", handler.SearchGames)
		}

		// Library routes (protected)
		libraryRoutes := apiV1.Group("/library")
		libraryRoutes.Use(auth.AuthMiddleware())
		{
			libraryRoutes.GET("", handler.GetLibrary)
			libraryRoutes.POST("", handler.AddLibraryEntry)
			libraryRoutes.PUT("/:id", handler.UpdateLibraryEntry)
			libraryRoutes.DELETE("/:id", handler.DeleteLibraryEntry)

			// Legacy-provider migration
			libraryRoutes.POST("/:id/migrate", handler.MigrateEntry)
			libraryRoutes.GET("/:id/migrate/candidates", handler.MigrationCandidates)
			libraryRoutes.POST("/:id/migrate/confirm", handler.ConfirmMigration)
		}

		// Taxonomy routes (public reads; auth is optional so browse pages
		// work before login)
		taxonomyRoutes := apiV1.Group("")
		taxonomyRoutes.Use(auth.OptionalAuthMiddleware())
		{
			taxonomyRoutes.GET("/genres", handler.GetGenres)
			taxonomyRoutes.GET("/platforms", handler.GetPlatforms)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Genre CRUD
			genres := adminRoutes.Group("/genres")
			{
				genres.POST("", handler.CreateGenre)
				genres.PUT("/:id", handler.UpdateGenre)
				genres.DELETE("/:id", handler.DeleteGenre)
			}
		}
	}

	addr := ":" + cfg.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html\n", cfg.Port)
	stdlog.Fatal(router.Run(addr))
}
