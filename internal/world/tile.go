// Package world provides island generation and the read-mostly world model.
package world

// Tile represents a single terrain cell.
type Tile uint8

const (
	// TileGround is walkable grassland.
	TileGround Tile = iota
	// TileWater is impassable sea or lake.
	TileWater
	// TileRock is an impassable outcrop.
	TileRock
	// TileSand is walkable beach.
	TileSand
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileGround || t == TileSand
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileGround:
		return "ground"
	case TileWater:
		return "water"
	case TileRock:
		return "rock"
	case TileSand:
		return "sand"
	default:
		return "unknown"
	}
}
