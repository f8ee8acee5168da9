package business_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Agurato/costars/internal/business"
)

type signalingImporter struct {
	imports chan struct{}
}

func (si signalingImporter) Import(context.Context) (int, error) {
	si.imports <- struct{}{}
	return 1, nil
}

func TestDatasetWatcher(t *testing.T) {
	datasetPath := filepath.Join(t.TempDir(), "latest_movies.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte(`[]`), 0644))

	importer := signalingImporter{imports: make(chan struct{}, 10)}
	dw, err := business.NewDatasetWatcher(datasetPath, importer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dw.Run(ctx, 10*time.Millisecond)
	dw.Wait()
	defer dw.Stop()

	require.NoError(t, os.WriteFile(datasetPath, []byte(`[{"cast":["A","B"]}]`), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(datasetPath, future, future))

	select {
	case <-importer.imports:
	case <-time.After(5 * time.Second):
		assert.Fail(t, "dataset was not imported after being modified")
	}
}

func TestDatasetWatcherMissingFile(t *testing.T) {
	_, err := business.NewDatasetWatcher(filepath.Join(t.TempDir(), "missing.json"), signalingImporter{})
	assert.Error(t, err)
}
