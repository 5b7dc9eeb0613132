package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"fitlog/config"
	"fitlog/controllers"
	"fitlog/db"
	"fitlog/internal/cache"
	"fitlog/middlewares"
	"fitlog/models"
	"fitlog/routes"
	"fitlog/seed"
	"fitlog/services"
	"fitlog/store"
	"fitlog/utils"
	"fitlog/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiry)*time.Minute)

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := db.ConnectPostgres(cfg.Postgres.DSN); err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	log.Println("Connected to Postgres")

	rdb, err := cache.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Domain stores over MongoDB
	dietBackend := store.NewMongoBackend[[]models.Meal](db.MongoDatabase, "diet_active", "diet_history")
	cardioBackend := store.NewMongoBackend[[]models.CardioSession](db.MongoDatabase, "cardio_active", "cardio_history")
	trainingBackend := store.NewMongoBackend[[]models.Exercise](db.MongoDatabase, "training_active", "training_history")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"diet":     dietBackend.EnsureIndexes,
		"cardio":   cardioBackend.EnsureIndexes,
		"training": trainingBackend.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to create %s indexes: %v", name, err)
		}
	}
	if err := services.EnsureStatsIndexes(ctx, db.MongoDatabase, "statistics"); err != nil {
		log.Fatalf("Failed to create statistics indexes: %v", err)
	}
	if err := services.EnsureActivityIndexIndexes(ctx, db.MongoDatabase, "cardio_activity_index"); err != nil {
		log.Fatalf("Failed to create activity index indexes: %v", err)
	}
	if err := services.EnsureMealIndexes(ctx, db.MongoDatabase); err != nil {
		log.Fatalf("Failed to create meal indexes: %v", err)
	}

	// Service graph
	statistics := services.NewStatisticsService(services.NewMongoStatsBackend(db.MongoDatabase, "statistics"))
	ingredients := services.NewMongoIngredientCatalog(db.MongoDatabase, "ingredients")
	activityIndex := services.NewMongoActivityIndex(db.MongoDatabase, "cardio_activity_index")

	diet := services.NewDietService(dietBackend, cfg.Windows.Diet, ingredients, statistics)
	cardio := services.NewCardioService(cardioBackend, cfg.Windows.Cardio, activityIndex, statistics)
	training := services.NewTrainingService(trainingBackend, cfg.Windows.Training, statistics)

	accounts := services.NewAccountService(db.Postgres)
	achievements := services.NewAchievementService(db.Postgres, websocket.Hub{})
	boards := cache.NewLeaderboardCache(rdb, time.Minute)
	community := services.NewCommunityService(db.Postgres, cardio, training, statistics, boards)
	meals := services.NewMealService(db.MongoDatabase)

	seed.Achievements(achievements)
	seed.Ingredients(context.Background(), ingredients)

	controllers.Init(accounts, diet, cardio, training, statistics, community, meals, achievements, cache.NewRateLimiter(rdb))

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	routes.SetupAuthRoutes(router)
	routes.SetupAdminRoutes(router)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		routes.SetupProfileRoutes(auth)
		routes.SetupDietRoutes(auth)
		routes.SetupCardioRoutes(auth)
		routes.SetupTrainingRoutes(auth)
		routes.SetupStatisticsRoutes(auth)
		routes.SetupCommunityRoutes(auth)
		routes.SetupMealRoutes(auth)
		routes.SetupAchievementRoutes(auth)
	}

	return router
}
