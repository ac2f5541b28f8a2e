package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripwise/config"
	"tripwise/database"
	"tripwise/handlers"
	"tripwise/services"
	"tripwise/snapshot"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// The credential grant happens here; a denied grant is fatal.
	client, err := services.NewAmadeusClient(cfg.Amadeus)
	if err != nil {
		log.Fatalf("❌ Amadeus authentication failed: %v", err)
	}
	log.Println("✅ Amadeus API authenticated")

	resolver := services.NewAirportResolver(client, cfg.Airports.DataPath)

	store := snapshot.New(cfg.Snapshot.Path)
	if err := store.Init(); err != nil {
		log.Fatalf("❌ Failed to initialize snapshot store at %s: %v", cfg.Snapshot.Path, err)
	}
	log.Printf("✅ Snapshot store initialized at %s", cfg.Snapshot.Path)

	history, err := database.Open(cfg.DB.URL)
	if err != nil {
		log.Fatalf("❌ Failed to open search history database: %v", err)
	}
	if history.Enabled() {
		log.Println("✅ Search history enabled")
	} else {
		log.Println("Search history disabled (DATABASE_URL not set)")
	}

	api := handlers.NewAPI(client, resolver, store, history)

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	// Routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.HealthHandler)

		apiGroup.POST("/flights", api.FlightSearchHandler)
		apiGroup.POST("/flights/price", api.FlightPriceHandler)
		apiGroup.POST("/flights/book", api.FlightBookHandler)

		apiGroup.POST("/hotels/search", api.HotelSearchHandler)
		apiGroup.POST("/hotels/book", api.HotelBookHandler)

		apiGroup.POST("/transfers/search", api.TransferSearchHandler)
		apiGroup.POST("/transfers/book", api.TransferBookHandler)

		apiGroup.GET("/locations/cities", api.CityCoordinatesHandler)
		apiGroup.GET("/activities", api.ActivitiesHandler)

		apiGroup.GET("/snapshot", api.SnapshotHandler)
		apiGroup.GET("/snapshot/pdf", api.SnapshotPDFHandler)
		apiGroup.GET("/history", api.HistoryHandler)
	}

	log.Printf("🚀 Tripwise backend starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
