package renderer

import (
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer shades the pixels of individual tiles into a shared frame
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a new tile renderer with its own raytracer
func NewTileRenderer(scene Scene, config ShadingConfig) *TileRenderer {
	return &TileRenderer{
		raytracer: NewRaytracer(scene, config),
	}
}

// RenderTileBounds renders pixels within bounds into frame and returns the
// rays traced for them. Concurrent calls must use disjoint bounds.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame) RayCounters {
	tr.raytracer.ResetCounters()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			frame.Set(x, y, tr.raytracer.PixelColor(x, y, frame.Width, frame.Height))
		}
	}

	return tr.raytracer.Counters()
}
