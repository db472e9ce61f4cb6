/*
Copyright © 2025 haiminh
*/
package cmd

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/haiminh/pdf-insight-be/config"
	"github.com/haiminh/pdf-insight-be/database"
	"github.com/haiminh/pdf-insight-be/handler"
	"github.com/haiminh/pdf-insight-be/service"
	"github.com/haiminh/pdf-insight-be/storage"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ingestion and search server",
	Long:  `Starts the HTTP server exposing the ingestion pipeline and similarity search.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		objectStorage, err := storage.NewObjectStorage(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}

		store, err := database.NewStore(context.Background(), cfg.Store, cfg.EmbeddingDimension)
		if err != nil {
			log.Fatalf("Failed to connect to datastore: %v", err)
		}

		upstreamTimeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
		doclingClient := service.NewDoclingClient(cfg.DoclingAPIURL, upstreamTimeout)
		embeddingService := service.NewEmbeddingService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		ingestService := service.NewIngestService(objectStorage, doclingClient, embeddingService, store, upstreamTimeout)
		queryService := service.NewQueryService(embeddingService, store, upstreamTimeout)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		healthHandler := handler.NewHealthHandler()
		ingestHandler := handler.NewIngestHandler(ingestService)
		searchHandler := handler.NewSearchHandler(queryService)
		uploadHandler := handler.NewUploadHandler(objectStorage, ingestService, cfg.UploadBucket)
		documentHandler := handler.NewDocumentHandler(store, ingestService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", healthHandler.HandleHealth)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/ingest", ingestHandler.HandleIngest)
			apiV1.POST("/search", searchHandler.HandleSearch)
			apiV1.POST("/upload", uploadHandler.HandleUpload)
			apiV1.GET("/documents/:id", documentHandler.HandleGetDocument)
			apiV1.POST("/documents/:id/reingest", documentHandler.HandleReingest)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
