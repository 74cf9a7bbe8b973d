// Package grid computes tile and sub-region rectangles for the fixed
// 3x10 voter-register page layout. Geometry is calibrated externally;
// nothing here inspects pixel content.
package grid

import (
	"fmt"
	"image"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// Calibrated measurements for the register page grid, in pixels.
const (
	Rows = 10
	Cols = 3

	TileWidth  = 298
	TileHeight = 121
	StartX     = 22
	StartY     = 42
	GapX       = 5
	GapY       = 5
)

// Sub-region rectangles relative to a tile's origin.
var subRegions = map[entity.RegionKind]image.Rectangle{
	entity.RegionSerial: image.Rect(0, 0, 150, 25),
	entity.RegionEpic:   image.Rect(200, 0, 298, 25),
	entity.RegionText:   image.Rect(0, 25, 220, 115),
}

// Tile is one voter record's rectangle on the page.
type Tile struct {
	ID     string // zero-padded two-digit record id, row-major
	Row    int
	Col    int
	Bounds image.Rectangle // page-frame coordinates
}

// SubRegion returns the page-frame rectangle of one of the tile's fixed
// sub-regions. Sub-regions are defined in the tile's local frame, so the
// result is independent of where the tile sits on the page.
func (t Tile) SubRegion(kind entity.RegionKind) image.Rectangle {
	return subRegions[kind].Add(t.Bounds.Min)
}

// LocalSubRegion returns the sub-region rectangle in the tile's own frame.
func LocalSubRegion(kind entity.RegionKind) image.Rectangle {
	return subRegions[kind]
}

// Segment returns every in-bounds tile for a page of the given
// dimensions, in row-major order. A tile whose rectangle would extend
// past the page edge is omitted entirely; record ids are derived from
// grid position and are never renumbered around a skip.
func Segment(pageWidth, pageHeight int) []Tile {
	tiles := make([]Tile, 0, Rows*Cols)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			x := StartX + col*(TileWidth+GapX)
			y := StartY + row*(TileHeight+GapY)
			if x+TileWidth > pageWidth || y+TileHeight > pageHeight {
				continue
			}
			tiles = append(tiles, Tile{
				ID:     RecordID(row, col),
				Row:    row,
				Col:    col,
				Bounds: image.Rect(x, y, x+TileWidth, y+TileHeight),
			})
		}
	}
	return tiles
}

// RecordID maps a grid position to its zero-padded record id.
func RecordID(row, col int) string {
	return fmt.Sprintf("%02d", row*Cols+col)
}

// MinPageWidth and MinPageHeight are the smallest page dimensions that
// fit the full grid.
const (
	MinPageWidth  = StartX + Cols*TileWidth + (Cols-1)*GapX
	MinPageHeight = StartY + Rows*TileHeight + (Rows-1)*GapY
)
