package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/haiminh/pdf-insight-be/types"
)

type Config struct {
	Port                   string        `mapstructure:"port"`
	DoclingAPIURL          string        `mapstructure:"DOCLING_API_URL"`
	OpenAIAPIKey           string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL          string        `mapstructure:"openai_base_url"`
	EmbeddingModel         string        `mapstructure:"embedding_model"`
	EmbeddingDimension     int           `mapstructure:"embedding_dimension"`
	UpstreamTimeoutSeconds int           `mapstructure:"upstream_timeout_seconds"`
	UploadBucket           string        `mapstructure:"upload_bucket"`
	Store                  StoreConfig   `mapstructure:"store"`
	Storage                StorageConfig `mapstructure:"storage"`
}

// StoreConfig selects and configures the fragment/document datastore.
type StoreConfig struct {
	Type           string `mapstructure:"type"` // "postgres" or "weaviate"
	PostgresDSN    string `mapstructure:"POSTGRES_DSN"`
	WeaviateHost   string `mapstructure:"weaviate_host"`
	WeaviateAPIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

// StorageConfig selects and configures the object storage holding the
// uploaded PDFs.
type StorageConfig struct {
	Type           string `mapstructure:"type"` // "local" or "minio"
	BaseDir        string `mapstructure:"base_dir"`
	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Secrets come from the environment, not the config file
	v.BindEnv("DOCLING_API_URL")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("store.POSTGRES_DSN", "POSTGRES_DSN")
	v.BindEnv("store.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("storage.MINIO_ACCESS_KEY", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.MINIO_SECRET_KEY", "MINIO_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-ada-002"
	}
	if c.EmbeddingDimension == 0 {
		c.EmbeddingDimension = 1536
	}
	if c.UpstreamTimeoutSeconds == 0 {
		c.UpstreamTimeoutSeconds = 120
	}
	if c.UploadBucket == "" {
		c.UploadBucket = "pdfs"
	}
	if c.Store.Type == "" {
		c.Store.Type = "postgres"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.BaseDir == "" {
		c.Storage.BaseDir = "data/storage"
	}
}

// Validate checks that every value the chosen backends require is
// present. It runs once at startup so a missing secret fails the process
// before any request is accepted.
func (c *Config) Validate() error {
	if c.DoclingAPIURL == "" {
		return &types.ConfigurationError{Key: "DOCLING_API_URL"}
	}
	if c.OpenAIAPIKey == "" {
		return &types.ConfigurationError{Key: "OPENAI_API_KEY"}
	}
	switch c.Store.Type {
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return &types.ConfigurationError{Key: "POSTGRES_DSN"}
		}
	case "weaviate":
		if c.Store.WeaviateHost == "" {
			return &types.ConfigurationError{Key: "store.weaviate_host"}
		}
	default:
		return fmt.Errorf("unknown store type: %s", c.Store.Type)
	}
	switch c.Storage.Type {
	case "local":
	case "minio":
		if c.Storage.MinioEndpoint == "" {
			return &types.ConfigurationError{Key: "storage.minio_endpoint"}
		}
		if c.Storage.MinioAccessKey == "" {
			return &types.ConfigurationError{Key: "MINIO_ACCESS_KEY"}
		}
		if c.Storage.MinioSecretKey == "" {
			return &types.ConfigurationError{Key: "MINIO_SECRET_KEY"}
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	return nil
}
