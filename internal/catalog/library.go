package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meur/dexview/internal/models"
)

// Status is the state of the most recent load attempt.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot summarises a Library for status endpoints.
type Snapshot struct {
	Status   Status    `json:"status"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
	Error    string    `json:"error,omitempty"`
}

// Library holds the collection produced by the latest successful load.
// A failed load discards the previous collection; callers recover by
// calling Reload again.
type Library struct {
	loader *Loader
	logger *slog.Logger

	loadMu sync.Mutex // serialises loads

	mu          sync.RWMutex
	status      Status
	coll        models.Collection
	err         error
	loadedAt    time.Time
	subscribers []func(models.Collection)
}

// NewLibrary creates an empty Library.
func NewLibrary(loader *Loader, logger *slog.Logger) *Library {
	return &Library{
		loader: loader,
		logger: logger.With("component", "library"),
		status: StatusIdle,
	}
}

// OnLoaded registers fn to be called after every successful load.
func (lib *Library) OnLoaded(fn func(models.Collection)) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	lib.subscribers = append(lib.subscribers, fn)
}

// Reload runs a fresh full load and replaces the held collection.
func (lib *Library) Reload(ctx context.Context) error {
	lib.loadMu.Lock()
	defer lib.loadMu.Unlock()

	lib.mu.Lock()
	lib.status = StatusLoading
	lib.mu.Unlock()

	coll, err := lib.loader.Load(ctx)

	lib.mu.Lock()
	if err != nil {
		lib.status = StatusFailed
		lib.coll = nil
		lib.err = err
		lib.mu.Unlock()
		return err
	}
	lib.status = StatusReady
	lib.coll = coll
	lib.err = nil
	lib.loadedAt = time.Now()
	subs := append([]func(models.Collection){}, lib.subscribers...)
	lib.mu.Unlock()

	for _, fn := range subs {
		fn(coll)
	}
	return nil
}

// Collection returns the loaded collection, the last load error, or
// ErrNotLoaded while nothing has been loaded yet.
func (lib *Library) Collection() (models.Collection, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	switch lib.status {
	case StatusReady:
		return lib.coll, nil
	case StatusFailed:
		return nil, lib.err
	default:
		return nil, ErrNotLoaded
	}
}

// Snapshot returns the current load status.
func (lib *Library) Snapshot() Snapshot {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	s := Snapshot{
		Status: lib.status,
		Count:  len(lib.coll),
	}
	if lib.status == StatusReady {
		s.LoadedAt = lib.loadedAt
	}
	if lib.err != nil {
		s.Error = lib.err.Error()
	}
	return s
}
