// Package catalog loads the creature collection and derives the paginated,
// searchable list view from it.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/models"
)

// Source is the remote data source. *pokeapi.Client implements it.
type Source interface {
	ListCreatures(ctx context.Context, limit int) ([]models.CreatureRef, error)
	GetCreature(ctx context.Context, ref string) (*models.Creature, error)
}

// Loader fetches the whole collection: the reference list first, then every
// detail record concurrently.
type Loader struct {
	src           Source
	limit         int
	maxConcurrent int
	logger        *slog.Logger
}

// NewLoader creates a Loader using the limit and concurrency of cfg.
func NewLoader(src Source, cfg config.SourceConfig, logger *slog.Logger) *Loader {
	return &Loader{
		src:           src,
		limit:         cfg.Limit,
		maxConcurrent: cfg.MaxConcurrent,
		logger:        logger.With("component", "loader"),
	}
}

// Load performs one fresh, all-or-nothing load. A failed list fetch stops
// before any detail is requested; a single failed detail fetch cancels the
// rest and fails the load. The result keeps the order of the reference list.
func (l *Loader) Load(ctx context.Context) (models.Collection, error) {
	loadID := uuid.New().String()[:8]
	logger := l.logger.With("load_id", loadID)
	start := time.Now()

	refs, err := l.src.ListCreatures(ctx, l.limit)
	if err != nil {
		logger.Error("list fetch failed", "error", err)
		return nil, &FetchError{Op: "list", Err: err}
	}

	// Each goroutine writes only its own slot, so results land by list index
	// no matter which response arrives first.
	slots := make(models.Collection, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	if l.maxConcurrent > 0 {
		g.SetLimit(l.maxConcurrent)
	}
	for i, ref := range refs {
		g.Go(func() error {
			logger.Debug("fetch detail", "index", i, "name", ref.Name)
			c, err := l.src.GetCreature(gctx, ref.DetailURL)
			if err != nil {
				return &FetchError{Op: "detail", Ref: ref.Name, Err: err}
			}
			slots[i] = *c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("detail fetch failed", "error", err)
		return nil, err
	}

	logger.Info("collection loaded",
		"count", len(slots),
		"duration", time.Since(start).String(),
	)
	return slots, nil
}
