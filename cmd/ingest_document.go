/*
Copyright © 2025 haiminh
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/haiminh/pdf-insight-be/config"
	"github.com/haiminh/pdf-insight-be/database"
	"github.com/haiminh/pdf-insight-be/service"
	"github.com/haiminh/pdf-insight-be/storage"
	"github.com/haiminh/pdf-insight-be/utils"
)

// ingestDocumentCmd ingests a single PDF from the command line: either an
// object already sitting in storage (--path) or a local file (--file),
// which is uploaded first.
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest-document",
	Short: "Ingest one PDF through the pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		bucket, _ := cmd.Flags().GetString("bucket")
		objectPath, _ := cmd.Flags().GetString("path")
		localFile, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")

		if objectPath == "" && localFile == "" {
			log.Fatal("either --path or --file is required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		if bucket == "" {
			bucket = cfg.UploadBucket
		}

		objectStorage, err := storage.NewObjectStorage(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		store, err := database.NewStore(context.Background(), cfg.Store, cfg.EmbeddingDimension)
		if err != nil {
			log.Fatalf("Failed to connect to datastore: %v", err)
		}

		ctx := context.Background()
		if localFile != "" {
			data, err := os.ReadFile(localFile)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", localFile, err)
			}
			objectPath = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), utils.SanitizeFileName(filepath.Base(localFile)))
			if err := objectStorage.Upload(ctx, bucket, objectPath, data, "application/pdf"); err != nil {
				log.Fatalf("Failed to upload %s: %v", localFile, err)
			}
			log.Printf("Uploaded %s to %s/%s", localFile, bucket, objectPath)
		}

		upstreamTimeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
		doclingClient := service.NewDoclingClient(cfg.DoclingAPIURL, upstreamTimeout)
		embeddingService := service.NewEmbeddingService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		ingestService := service.NewIngestService(objectStorage, doclingClient, embeddingService, store, upstreamTimeout)

		result, err := ingestService.Ingest(ctx, bucket, objectPath, title)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		fmt.Printf("document_id=%s fragments_extracted=%d fragments_processed=%d\n",
			result.DocumentID, result.FragmentsExtracted, result.FragmentsProcessed)
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)

	ingestDocumentCmd.Flags().StringP("bucket", "b", "", "Storage bucket (defaults to upload_bucket)")
	ingestDocumentCmd.Flags().StringP("path", "p", "", "Object path of a PDF already in storage")
	ingestDocumentCmd.Flags().StringP("file", "f", "", "Local PDF to upload and ingest")
	ingestDocumentCmd.Flags().StringP("title", "t", "", "Display name for the document")
}
