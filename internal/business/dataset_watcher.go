package business

import (
	"context"
	"fmt"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog/log"
)

type Importer interface {
	Import(ctx context.Context) (int, error)
}

// DatasetWatcher runs an import every time the dataset file changes
type DatasetWatcher struct {
	Importer

	path    string
	watcher *watcher.Watcher
}

func NewDatasetWatcher(path string, imp Importer) (*DatasetWatcher, error) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Create, watcher.Write, watcher.Rename, watcher.Move)
	if err := w.Add(path); err != nil {
		return nil, fmt.Errorf("could not watch dataset '%s': %w", path, err)
	}
	return &DatasetWatcher{
		Importer: imp,
		path:     path,
		watcher:  w,
	}, nil
}

// Run polls the dataset file every interval until Stop is called or ctx is done.
// It blocks, like watcher.Start.
func (dw *DatasetWatcher) Run(ctx context.Context, interval time.Duration) error {
	go dw.eventListener(ctx)
	return dw.watcher.Start(interval)
}

// Wait blocks until the watcher has started polling
func (dw *DatasetWatcher) Wait() {
	dw.watcher.Wait()
}

func (dw *DatasetWatcher) Stop() {
	dw.watcher.Close()
}

// eventListener re-imports the dataset on every file event
func (dw *DatasetWatcher) eventListener(ctx context.Context) {
	for {
		select {
		case event := <-dw.watcher.Event:
			log.Debug().Str("path", event.Path).Str("op", event.Op.String()).Msg("Dataset file event")
			if event.IsDir() {
				continue
			}
			if _, err := dw.Importer.Import(ctx); err != nil {
				log.Error().Err(err).Str("path", dw.path).Msg("Could not import dataset")
			}
		case err := <-dw.watcher.Error:
			log.Error().Err(err).Str("path", dw.path).Msg("Error event")
		case <-ctx.Done():
			dw.watcher.Close()
			return
		case <-dw.watcher.Closed:
			return
		}
	}
}
