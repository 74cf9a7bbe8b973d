// Package dispatch distributes recognition work for a page across an
// ocr.Engine. Two schedulers exist: a sequential one for the persistent
// engine (which is not safe for concurrent use) and a bounded worker
// pool for the subprocess engine.
package dispatch

import (
	"context"
	"image"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/ocr"
)

// Item is one unit of recognition work: a single sub-region of a tile.
type Item struct {
	TileID string
	Kind   entity.RegionKind
	Image  image.Image
}

// Key identifies an item's result regardless of completion order.
type Key struct {
	TileID string
	Kind   entity.RegionKind
}

// Scheduler executes recognition calls for a page's work items and
// collects results keyed by (tile, region). A failed region yields a
// failed result under its key; it never aborts sibling items.
type Scheduler interface {
	Dispatch(ctx context.Context, engine ocr.Engine, items []Item) map[Key]ocr.Result
}

// Sequential processes items one at a time in the order given.
// Required for the persistent engine strategy.
type Sequential struct{}

func (Sequential) Dispatch(ctx context.Context, engine ocr.Engine, items []Item) map[Key]ocr.Result {
	results := make(map[Key]ocr.Result, len(items))
	for _, item := range items {
		results[Key{item.TileID, item.Kind}] = engine.Recognize(ctx, item.Image, ocr.ProfileFor(item.Kind))
	}
	return results
}

// Pool processes items concurrently with a bounded number of workers.
// Items are independent, so completion order is arbitrary; results are
// reassembled by key under a single lock.
type Pool struct {
	Workers int
	Logger  *slog.Logger
}

// NewPool builds a pooled scheduler. Worker count defaults to the
// available CPU parallelism.
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{Workers: workers, Logger: logger}
}

func (p *Pool) Dispatch(ctx context.Context, engine ocr.Engine, items []Item) map[Key]ocr.Result {
	results := make(map[Key]ocr.Result, len(items))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for _, item := range items {
		g.Go(func() error {
			res := engine.Recognize(ctx, item.Image, ocr.ProfileFor(item.Kind))
			mu.Lock()
			results[Key{item.TileID, item.Kind}] = res
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; recognition failures are recorded as
	// failed results instead.
	_ = g.Wait()

	p.Logger.Debug("dispatch.pool.done", "items", len(items), "workers", p.Workers)
	return results
}
