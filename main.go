package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()

	if os.Getenv("GO_ENV") != "test" {
		utils.InitMongoClient()
	}
}

func setupRouter(appCfg config.AppConfig) *gin.Engine {
	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	notesRepo := repository.GetNotesRepo(utils.MongoClient)

	// Services
	userService := &usecase.UserService{UsersRepo: userRepo}
	notesService := &usecase.NotesService{NotesRepo: notesRepo}
	statsService := &usecase.StatsService{NotesRepo: notesRepo}

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	noteHandler := handler.NewNoteHandler(notesService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Rate-limit counters: shared via Redis when configured, otherwise
	// per-process fixed windows.
	counterStore := middleware.NewMemoryCounterStore()
	if appCfg.RedisURL != "" {
		redisStore, err := middleware.NewRedisCounterStore(appCfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect rate-limit counter store: %v", err)
		}
		counterStore = redisStore
		log.Println("Rate limiting backed by Redis")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware(appCfg.CORSOrigin))
	router.Use(middleware.RequestSizeLimiter(10 << 20))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ErrorHandler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.GeneralLimiter(counterStore, appCfg.RateLimitWindow, appCfg.RateLimitMax))

	api.GET("/health", handler.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.AuthLimiter(counterStore), authHandler.Register)
		auth.POST("/regenerate", middleware.RequireAPIKey(userRepo), authHandler.Regenerate)
		auth.GET("/me", middleware.RequireAPIKey(userRepo), authHandler.Me)
	}

	notes := api.Group("/notes")
	notes.Use(middleware.RequireAPIKey(userRepo))
	{
		notes.GET("", noteHandler.List)
		notes.GET("/search", middleware.SearchLimiter(counterStore), noteHandler.Search)
		notes.GET("/:id", middleware.ValidateObjectID("id"), noteHandler.Get)
		notes.POST("", noteHandler.Create)
		notes.PUT("/:id", middleware.ValidateObjectID("id"), noteHandler.Update)
		notes.DELETE("/:id", middleware.ValidateObjectID("id"), noteHandler.Delete)
		notes.PATCH("/:id/favorite", middleware.ValidateObjectID("id"), noteHandler.ToggleFavorite)
	}

	stats := api.Group("/stats")
	stats.Use(middleware.RequireAPIKey(userRepo))
	{
		stats.GET("", statsHandler.GetStats)
		stats.GET("/tags", statsHandler.GetTagStats)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})

	return router
}

func main() {
	appCfg := config.LoadAppConfig()
	dbCfg := config.LoadDatabaseConfig()

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	router := setupRouter(appCfg)

	serverAddr := fmt.Sprintf(":%s", appCfg.Port)
	log.Printf("Server starting in %s mode on %s", appCfg.Environment, serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
