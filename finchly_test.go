package finchly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		svc, err := NewService(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.NotNil(t, svc.LinkRepository())
		assert.NotNil(t, svc.Provider())
		assert.NotNil(t, svc.backend)
		assert.NotNil(t, svc.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to open a database at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_FactoryMethods(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)
	defer svc.Close()

	t.Run("can create enrichment pipeline", func(t *testing.T) {
		pipeline, err := svc.NewPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := svc.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create RAG", func(t *testing.T) {
		rag, err := svc.NewRAG()
		require.NoError(t, err)
		require.NotNil(t, rag)
	})
}

func TestService_Close(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, svc.Close())
}
