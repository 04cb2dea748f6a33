package geo

import "fmt"

// World region grid. Tile (20,18) sits at the world origin; each region
// covers 32768x32768 world units split into 256x256 blocks of 128 units.
const (
	TileXMin = 16
	TileXMax = 26
	TileYMin = 10
	TileYMax = 25

	OriginTileX = 20
	OriginTileY = 18

	RegionSize    = 32768
	BlockSize     = 128
	BlocksPerSide = 256
)

type Point struct {
	X int
	Y int
}

type Region struct {
	TileX int
	TileY int
}

func (r Region) Key() string {
	return fmt.Sprintf("%d_%d", r.TileX, r.TileY)
}

func (r Region) InBounds() bool {
	return r.TileX >= TileXMin && r.TileX <= TileXMax &&
		r.TileY >= TileYMin && r.TileY <= TileYMax
}

func RegionOrigin(r Region) Point {
	return Point{
		X: (r.TileX - OriginTileX) * RegionSize,
		Y: (r.TileY - OriginTileY) * RegionSize,
	}
}

// BlockCenter returns the world-space center of block (bx, by) within a
// region. Sampling at half the block pitch keeps probes off cell borders.
func BlockCenter(r Region, bx, by int) Point {
	origin := RegionOrigin(r)
	return Point{
		X: origin.X + bx*BlockSize + BlockSize/2,
		Y: origin.Y + by*BlockSize + BlockSize/2,
	}
}

// RegionCenter is the probe point used for availability checks.
func RegionCenter(r Region) Point {
	origin := RegionOrigin(r)
	return Point{
		X: origin.X + RegionSize/2,
		Y: origin.Y + RegionSize/2,
	}
}
