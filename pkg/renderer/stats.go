package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the frame was split into
	NumWorkers  int           // Number of parallel workers used
	Rays        RayCounters   // Rays traced across all workers
	Elapsed     time.Duration // Wall-clock render time
}

// RaysPerPixel returns the average number of rays traced per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	total := s.Rays.PrimaryRays + s.Rays.ReflectionRays + s.Rays.ShadowRays
	return float64(total) / float64(s.TotalPixels)
}
