package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meur/dexview/internal/models"
)

// fakeSource serves an in-memory list. Detail refs are "ref:<name>".
type fakeSource struct {
	names   []string
	listErr error
	failOn  map[string]error         // name -> detail error
	delays  map[string]time.Duration // name -> detail latency

	mu          sync.Mutex
	detailCalls []string
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSource) ListCreatures(ctx context.Context, limit int) ([]models.CreatureRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	refs := make([]models.CreatureRef, 0, len(f.names))
	for i, n := range f.names {
		if i >= limit {
			break
		}
		refs = append(refs, models.CreatureRef{Name: n, DetailURL: "ref:" + n})
	}
	return refs, nil
}

func (f *fakeSource) GetCreature(ctx context.Context, ref string) (*models.Creature, error) {
	name := ref[len("ref:"):]

	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, name)
	f.mu.Unlock()

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if d := f.delays[name]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.failOn[name]; err != nil {
		return nil, err
	}
	return &models.Creature{ID: f.indexOf(name) + 1, Name: name}, nil
}

func (f *fakeSource) indexOf(name string) int {
	for i, n := range f.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.detailCalls)
}

var errBoom = errors.New("boom")

// makeCollection builds n records named "<prefix>-<i>" with ids 1..n.
func makeCollection(n int, prefix string) models.Collection {
	coll := make(models.Collection, n)
	for i := range coll {
		coll[i] = models.Creature{ID: i + 1, Name: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return coll
}
