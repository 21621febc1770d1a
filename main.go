package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"popflix/config"
	"popflix/db"
	"popflix/handlers"
	"popflix/middleware"
	"popflix/services"
	"popflix/store"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to apply schema: ", err)
	}
	log.Println("Database schema verified")

	// Stores
	users := store.NewUserStore(conn)
	txns := store.NewTransactionStore(conn)
	watchHistory := store.NewWatchHistoryStore(conn)
	favorites := store.NewFavoriteStore(conn)
	comments := store.NewCommentStore(conn)

	// Services
	verifier := services.NewGoogleVerifier()
	codec := services.NewTokenCodec(cfg.JWTSecret)
	directory := services.NewUserDirectory(users)
	entitlement := services.NewEntitlement(users, directory, txns,
		services.NewReceipts(cfg.SendGridAPIKey, cfg.ReceiptFrom),
		services.NewSlackNotifier(cfg.SlackWebhookURL),
	)
	stripe := services.NewStripeClient(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	payments := services.NewPayments(stripe, txns, entitlement)
	catalog := services.NewCatalog(cfg.TMDBAPIKey)

	// Handlers
	auth := middleware.NewAuth(codec, directory, entitlement)
	authHandler := handlers.NewAuthHandler(verifier, directory, codec)
	catalogHandler := handlers.NewCatalogHandler(catalog)
	watchHistoryHandler := handlers.NewWatchHistoryHandler(watchHistory)
	favoritesHandler := handlers.NewFavoritesHandler(favorites)
	commentsHandler := handlers.NewCommentsHandler(comments)
	paymentsHandler := handlers.NewPaymentsHandler(payments)

	r := gin.Default()
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		// Catalog (public)
		api.GET("/movies/popular", catalogHandler.PopularMovies)
		api.GET("/tv/popular", catalogHandler.PopularTV)
		api.GET("/search", catalogHandler.Search)

		// Streaming
		api.GET("/stream/:content_type/:tmdb_id", handlers.GetStreamURL)

		// Identity
		api.POST("/auth/google", authHandler.GoogleLogin)
		api.GET("/profile", auth.Required(), handlers.Profile)

		// Engagement
		api.POST("/watchhistory", auth.Required(), watchHistoryHandler.Add)
		api.GET("/watchhistory", auth.Required(), watchHistoryHandler.List)
		api.POST("/favorites", auth.Required(), favoritesHandler.Add)
		api.GET("/favorites", auth.Required(), favoritesHandler.List)
		api.DELETE("/favorites/:content_type/:tmdb_id", auth.Required(), favoritesHandler.Remove)
		api.POST("/comments", auth.Required(), commentsHandler.Add)
		api.GET("/comments/:content_type/:tmdb_id", commentsHandler.List)

		// Payments
		api.POST("/payments/create-checkout", auth.Required(), paymentsHandler.CreateCheckout)
		api.GET("/payments/status/:session_id", paymentsHandler.Status)
		api.POST("/webhook/stripe", paymentsHandler.StripeWebhook)
	}

	fmt.Println("Server starting on port " + cfg.Port)
	r.Run(":" + cfg.Port)
}
