package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidDimensions is returned for non-positive image or tile sizes
var ErrInvalidDimensions = errors.New("invalid render dimensions")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for a frame render
type RenderConfig struct {
	Width      int // Image width in pixels
	Height     int // Image height in pixels
	TileSize   int // Size of each square tile
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	MaxDepth   int // Maximum reflection depth
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      1440,
		Height:     1080,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		MaxDepth:   DefaultMaxDepth,
	}
}

// Renderer renders a whole frame by distributing tiles over a worker pool
type Renderer struct {
	scene  Scene
	config RenderConfig
	tiles  []*Tile
	logger core.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(scene Scene, config RenderConfig, logger core.Logger) (*Renderer, error) {
	if config.Width <= 0 || config.Height <= 0 || config.TileSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, tile %d", ErrInvalidDimensions, config.Width, config.Height, config.TileSize)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Renderer{
		scene:  scene,
		config: config,
		tiles:  NewTileGrid(config.Width, config.Height, config.TileSize),
		logger: logger,
	}, nil
}

// Render traces every pixel and returns the linear frame. Pixels are
// independent, so the result does not depend on the number of workers.
func (r *Renderer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	frame := NewFrame(r.config.Width, r.config.Height)

	ctx, cancel := context.WithCancel(ctx)
	workerPool := NewWorkerPool(r.scene, ShadingConfig{MaxDepth: r.config.MaxDepth}, r.config.NumWorkers, len(r.tiles))
	workerPool.Start(ctx)
	defer func() {
		// Cancel first so queued tiles are skipped when returning early
		cancel()
		workerPool.Stop()
	}()

	stats := RenderStats{
		TotalPixels: r.config.Width * r.config.Height,
		TotalTiles:  len(r.tiles),
		NumWorkers:  workerPool.GetNumWorkers(),
	}

	r.logger.Printf("Rendering %dx%d in %d tiles using %d workers (max depth %d)...\n",
		r.config.Width, r.config.Height, len(r.tiles), stats.NumWorkers, r.config.MaxDepth)

	// Submit all tiles as tasks
	for taskID, tile := range r.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			Frame:  frame,
			TaskID: taskID,
		})
	}

	lastReported := 0
	for completed := 0; completed < len(r.tiles); completed++ {
		var result TileResult
		select {
		case <-ctx.Done():
			r.logger.Printf("Rendering cancelled after %d of %d tiles\n", completed, len(r.tiles))
			return nil, stats, ctx.Err()
		case result = <-workerPool.Results():
		}

		if result.Error != nil {
			return nil, stats, result.Error
		}
		stats.Rays = stats.Rays.Add(result.Counters)

		// Report progress every 10%
		if percent := (completed + 1) * 100 / len(r.tiles); percent/10 > lastReported/10 {
			lastReported = percent
			r.logger.Printf("Progress: %d%% (%d/%d tiles)\n", percent, completed+1, len(r.tiles))
		}
	}

	stats.Elapsed = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%.2f rays/pixel)\n", stats.Elapsed, stats.RaysPerPixel())

	return frame, stats, nil
}
