package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundtrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("%PDF-1.4 test")
	require.NoError(t, store.Upload(ctx, "pdfs", "1700000000000-report.pdf", content, "application/pdf"))

	got, err := store.Download(ctx, "pdfs", "1700000000000-report.pdf")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStorageNestedPath(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Upload(ctx, "pdfs", "2024/q3/report.pdf", []byte("data"), "application/pdf"))

	got, err := store.Download(ctx, "pdfs", "2024/q3/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestLocalStorageMissingObject(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "pdfs", "missing.pdf")
	assert.Error(t, err)
}
