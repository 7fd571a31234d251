package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// captureLogger records formatted log lines
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func smallRenderConfig(numWorkers int) RenderConfig {
	return RenderConfig{
		Width:      24,
		Height:     18,
		TileSize:   5,
		NumWorkers: numWorkers,
		MaxDepth:   DefaultMaxDepth,
	}
}

func TestNewRenderer_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		config RenderConfig
	}{
		{"zero width", RenderConfig{Width: 0, Height: 10, TileSize: 4}},
		{"negative height", RenderConfig{Width: 10, Height: -1, TileSize: 4}},
		{"zero tile size", RenderConfig{Width: 10, Height: 10, TileSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer(createMockScene(), tt.config, &captureLogger{})
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestRender_MatchesSequentialTrace(t *testing.T) {
	scene := createMockScene()
	config := smallRenderConfig(4)

	r, err := NewRenderer(scene, config, &captureLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	frame, stats, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	rt := NewRaytracer(scene, ShadingConfig{MaxDepth: config.MaxDepth})
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			if expected := rt.PixelColor(x, y, config.Width, config.Height); frame.At(x, y) != expected {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, frame.At(x, y))
			}
		}
	}

	if stats.TotalPixels != config.Width*config.Height {
		t.Errorf("Expected %d pixels, got %d", config.Width*config.Height, stats.TotalPixels)
	}
	if stats.Rays.PrimaryRays != config.Width*config.Height {
		t.Errorf("Expected one primary ray per pixel, got %d", stats.Rays.PrimaryRays)
	}
	if stats.Rays != rt.Counters() {
		t.Errorf("Expected summed counters %+v, got %+v", rt.Counters(), stats.Rays)
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	scene := createMockScene()

	var frames []*Frame
	for _, workers := range []int{1, 3, 8} {
		r, err := NewRenderer(scene, smallRenderConfig(workers), &captureLogger{})
		if err != nil {
			t.Fatalf("NewRenderer failed: %v", err)
		}
		frame, stats, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		if stats.NumWorkers != workers {
			t.Errorf("Expected %d workers, got %d", workers, stats.NumWorkers)
		}
		frames = append(frames, frame)
	}

	for i := 1; i < len(frames); i++ {
		for p := range frames[0].Pixels {
			if frames[i].Pixels[p] != frames[0].Pixels[p] {
				t.Fatalf("Frame %d differs at pixel %d: %v vs %v", i, p, frames[i].Pixels[p], frames[0].Pixels[p])
			}
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	r, err := NewRenderer(createMockScene(), smallRenderConfig(2), &captureLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := r.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame from a cancelled render")
	}
}

func TestRender_ShapePanicBecomesError(t *testing.T) {
	scene := &MockScene{
		camera: geometry.NewCamera(core.NewVec3(0, 0, 5), 1.0),
		shapes: []geometry.Shape{MockShape{
			hitFn: func(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
				panic("broken shape")
			},
		}},
	}

	r, err := NewRenderer(scene, smallRenderConfig(2), &captureLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	_, _, err = r.Render(context.Background())
	if err == nil {
		t.Fatal("Expected an error from a panicking shape")
	}
	if !strings.Contains(err.Error(), "broken shape") {
		t.Errorf("Expected error to mention the panic value, got %v", err)
	}
}

func TestRender_LogsProgress(t *testing.T) {
	logger := &captureLogger{}
	r, err := NewRenderer(createMockScene(), smallRenderConfig(2), logger)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, _, err := r.Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, expected := range []string{"Rendering 24x18", "Progress: 100%", "Render completed"} {
		if !logger.contains(expected) {
			t.Errorf("Expected a log line containing %q, got %q", expected, logger.lines)
		}
	}
}

func TestNewRenderer_NilLoggerUsesDefault(t *testing.T) {
	r, err := NewRenderer(createMockScene(), smallRenderConfig(1), nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, ok := r.logger.(*DefaultLogger); !ok {
		t.Errorf("Expected DefaultLogger, got %T", r.logger)
	}
}
