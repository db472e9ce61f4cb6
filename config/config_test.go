package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiminh/pdf-insight-be/types"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "port: \"9090\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "text-embedding-ada-002", cfg.EmbeddingModel)
	assert.Equal(t, 1536, cfg.EmbeddingDimension)
	assert.Equal(t, 120, cfg.UpstreamTimeoutSeconds)
	assert.Equal(t, "pdfs", cfg.UploadBucket)
	assert.Equal(t, "postgres", cfg.Store.Type)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "data/storage", cfg.Storage.BaseDir)
}

func TestLoadConfigSecretsFromEnv(t *testing.T) {
	t.Setenv("DOCLING_API_URL", "http://docling.test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/test")

	path := writeConfigFile(t, "port: \"8080\"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://docling.test", cfg.DoclingAPIURL)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "postgres://localhost/test", cfg.Store.PostgresDSN)
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	err := cfg.Validate()
	var configErr *types.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "DOCLING_API_URL", configErr.Key)

	cfg.DoclingAPIURL = "http://docling.test"
	err = cfg.Validate()
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "OPENAI_API_KEY", configErr.Key)

	cfg.OpenAIAPIKey = "sk-test"
	err = cfg.Validate()
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "POSTGRES_DSN", configErr.Key)
}

func TestValidateWeaviateStore(t *testing.T) {
	cfg := &Config{
		DoclingAPIURL: "http://docling.test",
		OpenAIAPIKey:  "sk-test",
	}
	cfg.applyDefaults()
	cfg.Store.Type = "weaviate"

	err := cfg.Validate()
	var configErr *types.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "store.weaviate_host", configErr.Key)

	cfg.Store.WeaviateHost = "localhost:8081"
	assert.NoError(t, cfg.Validate())
}

func TestValidateUnknownStoreType(t *testing.T) {
	cfg := &Config{
		DoclingAPIURL: "http://docling.test",
		OpenAIAPIKey:  "sk-test",
	}
	cfg.applyDefaults()
	cfg.Store.Type = "cassandra"

	assert.Error(t, cfg.Validate())
}
