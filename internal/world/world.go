package world

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/stranded/internal/random"
	"github.com/samdwyer/stranded/internal/telemetry"
)

const (
	// DefaultSize is the number of tiles per side.
	DefaultSize = 150
	// TileSize is the width of one tile in world units.
	TileSize = 32.0
	// DefaultAttemptFactor caps random placement draws per requested node.
	DefaultAttemptFactor = 60
)

// Params configures world generation. A nil Resources slice means
// DefaultResourceSpecs for the requested size.
type Params struct {
	Terrain       TerrainParams  `yaml:"terrain"`
	Resources     []ResourceSpec `yaml:"resources"`
	AttemptFactor int            `yaml:"attempt_factor"`
}

// DefaultParams returns the stock generation parameters.
func DefaultParams() Params {
	return Params{
		Terrain:       DefaultTerrainParams(),
		AttemptFactor: DefaultAttemptFactor,
	}
}

// World is the generated island. Tiles never change after generation; the
// only mutation is the one-way collected flag on resource nodes.
type World struct {
	Seed int32
	Size int

	tiles     []Tile
	resources []ResourceNode
	fallback  map[Kind]int
}

// Generate builds the world for seed. The same seed, size and params always
// produce identical tiles and an identical resource list.
func Generate(ctx context.Context, seed int32, size int, params Params) (*World, error) {
	if size < 1 {
		return nil, fmt.Errorf("world size must be at least 1, got %d", size)
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	specs := params.Resources
	if specs == nil {
		specs = DefaultResourceSpecs(size)
	}

	rng := random.New(seed)
	tiles := SynthesizeTerrain(rng, size, params.Terrain)
	placement := PlaceResources(tiles, size, rng, specs, params.AttemptFactor)

	w := &World{
		Seed:      seed,
		Size:      size,
		tiles:     tiles,
		resources: placement.Nodes,
		fallback:  placement.Fallback,
	}

	tileCounts := w.TileCounts()
	attrs := []attribute.KeyValue{
		attribute.Int("world.seed", int(seed)),
		attribute.Int("world.size", size),
		attribute.Int("world.resource_count", len(w.resources)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	}
	for tile, n := range tileCounts {
		attrs = append(attrs, attribute.Int("world.tiles."+tile.String(), n))
	}
	for kind, n := range placement.Fallback {
		attrs = append(attrs, attribute.Int("world.fallback."+string(kind), n))
	}
	attrs = append(attrs, attribute.String("world.checksum", w.Checksum()))
	span.SetAttributes(attrs...)

	return w, nil
}

// Tile returns the tile at the given cell. Cells outside the grid are water.
func (w *World) Tile(x, y int) Tile {
	if x < 0 || y < 0 || x >= w.Size || y >= w.Size {
		return TileWater
	}
	return w.tiles[y*w.Size+x]
}

// Tiles returns a copy of the row-major tile grid.
func (w *World) Tiles() []Tile {
	out := make([]Tile, len(w.tiles))
	copy(out, w.tiles)
	return out
}

// TileCounts returns how many cells hold each tile kind.
func (w *World) TileCounts() map[Tile]int {
	counts := make(map[Tile]int, 4)
	for _, t := range w.tiles {
		counts[t]++
	}
	return counts
}

// Resources returns a copy of every resource node in placement order.
func (w *World) Resources() []ResourceNode {
	out := make([]ResourceNode, len(w.resources))
	copy(out, w.resources)
	return out
}

// Resource returns the node at index i.
func (w *World) Resource(i int) (ResourceNode, bool) {
	if i < 0 || i >= len(w.resources) {
		return ResourceNode{}, false
	}
	return w.resources[i], true
}

// ResourceCount returns how many nodes of kind were placed.
func (w *World) ResourceCount(kind Kind) int {
	n := 0
	for _, r := range w.resources {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// FallbackPlacements reports how many nodes of kind came from the grid scan.
func (w *World) FallbackPlacements(kind Kind) int {
	return w.fallback[kind]
}

// LogSummary records what is needed to reproduce this world: seed, size,
// checksum, and any kind the placer had to finish with the grid scan.
func (w *World) LogSummary(logger *log.Logger) {
	logger.Printf("world seed=%d size=%d checksum=%s", w.Seed, w.Size, w.Checksum())
	for _, kind := range Kinds {
		if n := w.FallbackPlacements(kind); n > 0 {
			logger.Printf("world: %d %s node(s) placed by fallback scan", n, kind)
		}
	}
}

// ResourcesWithin returns the indexes of uncollected nodes whose tile center
// lies strictly within radius world units of (px, py).
func (w *World) ResourcesWithin(px, py, radius float64) []int {
	var out []int
	for i, r := range w.resources {
		if r.Collected {
			continue
		}
		rx, ry := CellCenter(r.X, r.Y)
		if math.Hypot(rx-px, ry-py) < radius {
			out = append(out, i)
		}
	}
	return out
}

// Collect latches node i as collected. It reports the node's kind and
// whether this call did the collecting.
func (w *World) Collect(i int) (Kind, bool) {
	if i < 0 || i >= len(w.resources) || w.resources[i].Collected {
		return "", false
	}
	w.resources[i].Collected = true
	return w.resources[i].Kind, true
}

// IsBlocked reports whether a world position cannot be stood on.
func (w *World) IsBlocked(px, py float64) bool {
	tx := int(math.Floor(px / TileSize))
	ty := int(math.Floor(py / TileSize))
	if tx < 0 || ty < 0 || tx >= w.Size || ty >= w.Size {
		return true
	}
	return !w.tiles[ty*w.Size+tx].IsPassable()
}

// Center returns the world-unit position of the grid center, which is both
// the spawn point and the ship.
func (w *World) Center() (float64, float64) {
	c := float64(w.Size) * TileSize / 2
	return c, c
}

// CellAt converts a world position to grid coordinates.
func CellAt(px, py float64) (int, int) {
	return int(math.Floor(px / TileSize)), int(math.Floor(py / TileSize))
}

// CellCenter returns the world-unit center of a grid cell.
func CellCenter(x, y int) (float64, float64) {
	return float64(x)*TileSize + TileSize/2, float64(y)*TileSize + TileSize/2
}

// Checksum hashes the tiles and the resource layout. Two worlds with the
// same checksum were generated identically.
func (w *World) Checksum() string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(w.Seed))
	binary.LittleEndian.PutUint32(buf[4:], uint32(w.Size))
	h.Write(buf[:])
	for _, t := range w.tiles {
		h.Write([]byte{byte(t)})
	}
	for _, r := range w.resources {
		binary.LittleEndian.PutUint32(buf[:4], uint32(r.X))
		binary.LittleEndian.PutUint32(buf[4:], uint32(r.Y))
		h.Write(buf[:])
		h.Write([]byte(r.Kind))
	}
	return hex.EncodeToString(h.Sum(nil))
}
