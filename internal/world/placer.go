package world

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/stranded/internal/random"
)

// placementMargin keeps resources off the outermost cells of the grid.
const placementMargin = 2

// ResourceSpec describes how many nodes of a kind to scatter and where.
// Distances are in tiles from the grid center.
type ResourceSpec struct {
	Kind        Kind    `yaml:"kind"`
	Count       int     `yaml:"count"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Highlight   bool    `yaml:"highlight"`
}

// DefaultResourceSpecs returns the stock resource rings for a grid size.
func DefaultResourceSpecs(size int) []ResourceSpec {
	n := float64(size)
	count := func(f float64) int {
		return max(1, int(math.Floor(n*f)))
	}
	return []ResourceSpec{
		{Kind: KindFood, Count: count(0.9), MinDistance: 12, MaxDistance: n / 2.2},
		{Kind: KindWood, Count: count(1.2), MinDistance: 10, MaxDistance: n / 1.8},
		{Kind: KindOil, Count: count(0.35), MinDistance: n / 3, MaxDistance: n / 1.4, Highlight: true},
		{Kind: KindScrap, Count: count(0.25), MinDistance: n / 4, MaxDistance: n / 2, Highlight: true},
	}
}

// Placement is the outcome of scattering resources.
type Placement struct {
	Nodes []ResourceNode
	// Fallback counts, per kind, how many nodes came from the grid scan
	// rather than the random ring draws.
	Fallback map[Kind]int
}

// PlaceResources scatters every spec onto walkable tiles. The stream continues
// from wherever src currently is. Each kind gets exactly Count nodes: random
// ring draws are capped at attemptFactor*Count, and whatever is still missing
// is filled by a deterministic row-major scan.
func PlaceResources(tiles []Tile, size int, src random.Source, specs []ResourceSpec, attemptFactor int) Placement {
	result := Placement{Fallback: make(map[Kind]int)}
	if size < 1 || len(tiles) != size*size {
		return result
	}
	if attemptFactor < 1 {
		attemptFactor = 1
	}

	occupied := mapset.New[int]()
	for _, spec := range specs {
		if spec.Count <= 0 {
			continue
		}
		nodes := drawRing(tiles, size, src, spec, attemptFactor)
		for _, node := range nodes {
			occupied.Put(node.Y*size + node.X)
		}
		if missing := spec.Count - len(nodes); missing > 0 {
			extra := scanFallback(tiles, size, spec, missing, &occupied)
			result.Fallback[spec.Kind] = len(extra)
			nodes = append(nodes, extra...)
		}
		result.Nodes = append(result.Nodes, nodes...)
	}
	return result
}

func drawRing(tiles []Tile, size int, src random.Source, spec ResourceSpec, attemptFactor int) []ResourceNode {
	center := float64(size / 2)
	nodes := make([]ResourceNode, 0, spec.Count)
	for attempts := 0; len(nodes) < spec.Count && attempts < spec.Count*attemptFactor; attempts++ {
		angle := src.Float64() * math.Pi * 2
		dist := spec.MinDistance + float64(src.Float64()*(spec.MaxDistance-spec.MinDistance))
		x := int(math.Floor(center + float64(math.Cos(angle)*dist)))
		y := int(math.Floor(center + float64(math.Sin(angle)*dist)))
		if !insideMargin(x, y, size, placementMargin) {
			continue
		}
		if !tiles[y*size+x].IsPassable() {
			continue
		}
		nodes = append(nodes, newNode(x, y, spec))
	}
	return nodes
}

// scanFallback walks the grid row by row. Constraints are relaxed in order
// (distance floor first, then the border margin) until some walkable cell
// qualifies; spawn clearing guarantees the center cell always does.
func scanFallback(tiles []Tile, size int, spec ResourceSpec, missing int, occupied *mapset.Set[int]) []ResourceNode {
	passes := []struct {
		minDistance float64
		margin      int
	}{
		{spec.MinDistance, placementMargin},
		{0, placementMargin},
		{0, 0},
	}

	var candidates []int
	for _, pass := range passes {
		candidates = scanCandidates(tiles, size, pass.minDistance, pass.margin)
		if len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Free cells first, then occupied ones, both in scan order.
	ordered := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		if !occupied.Has(idx) {
			ordered = append(ordered, idx)
		}
	}
	for _, idx := range candidates {
		if occupied.Has(idx) {
			ordered = append(ordered, idx)
		}
	}

	nodes := make([]ResourceNode, 0, missing)
	for i := 0; i < missing; i++ {
		idx := ordered[i%len(ordered)]
		occupied.Put(idx)
		nodes = append(nodes, newNode(idx%size, idx/size, spec))
	}
	return nodes
}

func scanCandidates(tiles []Tile, size int, minDistance float64, margin int) []int {
	var out []int
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !insideMargin(x, y, size, margin) || !tiles[y*size+x].IsPassable() {
				continue
			}
			if CenterDistance(x, y, size) < minDistance {
				continue
			}
			out = append(out, y*size+x)
		}
	}
	return out
}

func insideMargin(x, y, size, margin int) bool {
	return x >= margin && y >= margin && x < size-margin && y < size-margin
}

func newNode(x, y int, spec ResourceSpec) ResourceNode {
	return ResourceNode{X: x, Y: y, Kind: spec.Kind, Highlight: spec.Highlight}
}
