/*
scheduler.go - Background catalog synchronization

PURPOSE:
  Keeps the stored template catalog in line with the TOML catalog file.
  Operators edit turnos.toml; the running server picks the change up
  without a restart.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Reloads the file only when its modification time changed
  - Upserts templates that are new or differ from the stored copy
  - Never deletes: templates created through the API survive a sync
  - A broken file is logged and skipped; the stored catalog stays as is

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 minute)
  - Enabled: Whether the job is active (default: true)

USAGE:
  sync := NewCatalogSync(store, "turnos.toml", logger)
  sync.Start()
  // ... later
  sync.Stop()

SEE ALSO:
  - factory/turno.go: LoadCatalog
  - store/sqlite/sqlite.go: SeedCatalog (first load at startup)
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/roster"
)

// SyncResult is the outcome of one sync pass.
type SyncResult struct {
	Reloaded  bool
	Upserted  []roster.ShiftID
	Unchanged int
}

// CatalogSync reloads a catalog file into a TemplateStore.
type CatalogSync struct {
	Store         roster.TemplateStore
	Path          string
	CheckInterval time.Duration
	Enabled       bool
	Logger        *slog.Logger

	lastMod time.Time
	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	runMu   sync.Mutex
}

// NewCatalogSync creates a new sync job.
func NewCatalogSync(store roster.TemplateStore, path string, logger *slog.Logger) *CatalogSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogSync{
		Store:         store,
		Path:          path,
		CheckInterval: time.Minute,
		Enabled:       true,
		Logger:        logger.With("component", "catalog_sync"),
	}
}

// Start begins the job. A pass runs immediately.
func (cs *CatalogSync) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		cs.Logger.Info("disabled, not starting")
		return
	}
	if cs.ticker != nil {
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.stop = make(chan struct{})
	cs.wg.Add(1)

	go cs.run()

	cs.Logger.Info("started", "path", cs.Path, "interval", cs.CheckInterval)
}

// Stop stops the job and waits for a running pass to finish.
func (cs *CatalogSync) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		cs.ticker = nil
		cs.Logger.Info("stopped")
	}
}

func (cs *CatalogSync) run() {
	defer cs.wg.Done()

	cs.check()

	for {
		select {
		case <-cs.ticker.C:
			cs.check()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CatalogSync) check() {
	res, err := cs.RunNow(context.Background())
	if err != nil {
		cs.Logger.Error("sync failed", "path", cs.Path, "error", err)
		return
	}
	if len(res.Upserted) > 0 {
		cs.Logger.Info("catalog synced", "upserted", res.Upserted, "unchanged", res.Unchanged)
	}
}

// RunNow runs one pass. The file is skipped when it has not changed since
// the last successful pass.
func (cs *CatalogSync) RunNow(ctx context.Context) (SyncResult, error) {
	cs.runMu.Lock()
	defer cs.runMu.Unlock()

	info, err := os.Stat(cs.Path)
	if err != nil {
		return SyncResult{}, fmt.Errorf("stat catalog: %w", err)
	}
	if info.ModTime().Equal(cs.lastMod) {
		return SyncResult{}, nil
	}

	cat, err := factory.LoadCatalog(cs.Path)
	if err != nil {
		return SyncResult{}, err
	}

	res := SyncResult{Reloaded: true}
	for _, t := range cat.Turnos {
		stored, err := cs.Store.GetTurno(ctx, t.ID)
		switch {
		case err == nil && reflect.DeepEqual(stored, t):
			res.Unchanged++
			continue
		case err != nil && !errors.Is(err, roster.ErrTurnoNotFound):
			return res, err
		}
		if err := cs.Store.SaveTurno(ctx, t); err != nil {
			return res, fmt.Errorf("save turno %s: %w", t.ID, err)
		}
		res.Upserted = append(res.Upserted, t.ID)
	}

	cs.lastMod = info.ModTime()
	return res, nil
}
