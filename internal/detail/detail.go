// Package detail is the view model of a single creature page: an independent
// fetch of one record plus the lifecycle of its cry playback.
package detail

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/meur/dexview/internal/audio"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/models"
)

var (
	// ErrInvalidID is returned for identifiers that cannot name a record.
	ErrInvalidID = errors.New("invalid creature id")

	// ErrSuperseded is returned by Open when another Open or a Close
	// happened while its fetch was in flight. The fetched record is dropped.
	ErrSuperseded = errors.New("navigation superseded")
)

// Source fetches one record by id. *pokeapi.Client implements it.
type Source interface {
	GetCreatureByID(ctx context.Context, id int) (*models.Creature, error)
}

// PlayerFactory builds the playback resource for a cry URL.
type PlayerFactory func(url string) audio.Player

// Loader fetches single records. It never consults a loaded collection.
type Loader struct {
	src    Source
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(src Source, logger *slog.Logger) *Loader {
	return &Loader{src: src, logger: logger.With("component", "detail")}
}

// LoadOne fetches the record for id. Failures match catalog.ErrFetchFailed.
func (l *Loader) LoadOne(ctx context.Context, id int) (*models.Creature, error) {
	if id < 1 {
		return nil, ErrInvalidID
	}
	c, err := l.src.GetCreatureByID(ctx, id)
	if err != nil {
		l.logger.Error("detail fetch failed", "id", id, "error", err)
		return nil, &catalog.FetchError{Op: "detail", Ref: strconv.Itoa(id), Err: err}
	}
	return c, nil
}

// View is one opened record together with its cry state machine.
type View struct {
	Creature *models.Creature
	Cry      *audio.Machine
}

// Close stops and releases the cry.
func (v *View) Close() error {
	return v.Cry.Release()
}

// Viewer keeps at most one View open. Opening another record, or closing
// the viewer, releases the previous record's audio.
type Viewer struct {
	loader    *Loader
	newPlayer PlayerFactory
	logger    *slog.Logger

	mu      sync.Mutex
	current *View
	gen     uint64 // bumped by every Open and Close
}

// NewViewer creates a Viewer. newPlayer may be nil, in which case cries
// are never playable.
func NewViewer(loader *Loader, newPlayer PlayerFactory, logger *slog.Logger) *Viewer {
	return &Viewer{
		loader:    loader,
		newPlayer: newPlayer,
		logger:    logger.With("component", "viewer"),
	}
}

// Open navigates to id. The previously open record is released first, even
// when the new fetch fails. The fetch runs without holding the viewer, so
// Close and Current stay responsive; if either Close or another Open comes
// in meanwhile, the result is released and ErrSuperseded returned.
func (v *Viewer) Open(ctx context.Context, id int) (*View, error) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.releaseLocked()
	v.mu.Unlock()

	c, err := v.loader.LoadOne(ctx, id)
	if err != nil {
		return nil, err
	}

	var player audio.Player
	if c.HasCry() && v.newPlayer != nil {
		player = v.newPlayer(c.CryURL)
	}
	view := &View{
		Creature: c,
		Cry:      audio.NewMachine(player, v.logger),
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		view.Close()
		return nil, ErrSuperseded
	}
	v.current = view
	return view, nil
}

// Current returns the open view, or nil.
func (v *Viewer) Current() *View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Close releases the open record, if any.
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.releaseLocked()
}

func (v *Viewer) releaseLocked() error {
	if v.current == nil {
		return nil
	}
	err := v.current.Close()
	v.current = nil
	return err
}
