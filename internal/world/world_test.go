package world

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/samdwyer/stranded/internal/random"
)

func mustGenerate(t *testing.T, seed int32, size int) *World {
	t.Helper()
	w, err := Generate(context.Background(), seed, size, DefaultParams())
	if err != nil {
		t.Fatalf("Generate(%d, %d) error: %v", seed, size, err)
	}
	return w
}

func TestWorldReproducibility(t *testing.T) {
	for _, seed := range []int32{0, 1, 12345, -987654} {
		w1 := mustGenerate(t, seed, 80)
		w2 := mustGenerate(t, seed, 80)

		t1, t2 := w1.Tiles(), w2.Tiles()
		if len(t1) != 80*80 {
			t.Fatalf("tile count = %d, want %d", len(t1), 80*80)
		}
		for i := range t1 {
			if t1[i] != t2[i] {
				t.Fatalf("seed %d: tile %d mismatch: %v != %v", seed, i, t1[i], t2[i])
			}
		}

		r1, r2 := w1.Resources(), w2.Resources()
		if len(r1) != len(r2) {
			t.Fatalf("seed %d: resource count mismatch: %d != %d", seed, len(r1), len(r2))
		}
		for i := range r1 {
			if r1[i] != r2[i] {
				t.Errorf("seed %d: resource %d mismatch: %+v != %+v", seed, i, r1[i], r2[i])
			}
		}

		if w1.Checksum() != w2.Checksum() {
			t.Errorf("seed %d: checksum mismatch", seed)
		}
	}
}

func TestLogSummary(t *testing.T) {
	params := DefaultParams()
	params.Resources = []ResourceSpec{
		{Kind: KindFood, Count: 4, MinDistance: 1, MaxDistance: 4},
		{Kind: KindOil, Count: 3, MinDistance: 5000, MaxDistance: 6000},
	}
	w, err := Generate(context.Background(), 17, 40, params)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := w.FallbackPlacements(KindOil); got != 3 {
		t.Fatalf("FallbackPlacements(oil) = %d, want 3", got)
	}

	var buf bytes.Buffer
	w.LogSummary(log.New(&buf, "", 0))
	out := buf.String()

	if !strings.Contains(out, "seed=17 size=40 checksum="+w.Checksum()) {
		t.Errorf("LogSummary() = %q, want seed, size and checksum", out)
	}
	if !strings.Contains(out, "3 oil node(s) placed by fallback scan") {
		t.Errorf("LogSummary() = %q, want oil fallback line", out)
	}
	if strings.Contains(out, "food node(s)") {
		t.Errorf("LogSummary() = %q, food never fell back", out)
	}
}

func TestWorldDifferentSeeds(t *testing.T) {
	w1 := mustGenerate(t, 12345, 80)
	w2 := mustGenerate(t, 54321, 80)
	if w1.Checksum() == w2.Checksum() {
		t.Error("Worlds with different seeds should not be identical")
	}
}

func TestGenerateRejectsEmptyGrid(t *testing.T) {
	if _, err := Generate(context.Background(), 1, 0, DefaultParams()); err == nil {
		t.Error("Generate with size 0 should fail")
	}
}

func TestSpawnWalkable(t *testing.T) {
	p := DefaultTerrainParams()
	for _, size := range []int{20, 21, 33, 64, 150} {
		for seed := int32(0); seed < 25; seed++ {
			tiles := SynthesizeTerrain(random.New(seed), size, p)
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					d := CenterDistance(x, y, size)
					tile := tiles[y*size+x]
					if d <= p.SpawnInnerRadius && tile != TileGround {
						t.Fatalf("size %d seed %d: (%d,%d) inside spawn core is %v", size, seed, x, y, tile)
					}
					if d <= p.SpawnOuterRadius && !tile.IsPassable() {
						t.Fatalf("size %d seed %d: (%d,%d) inside spawn ring is %v", size, seed, x, y, tile)
					}
				}
			}
		}
	}
}

func TestTerrainHasEveryTileKind(t *testing.T) {
	w := mustGenerate(t, 7, DefaultSize)
	counts := w.TileCounts()
	for _, tile := range []Tile{TileGround, TileWater, TileSand} {
		if counts[tile] == 0 {
			t.Errorf("no %v tiles on a default island", tile)
		}
	}
	if w.Tile(0, 0) != TileWater {
		t.Errorf("corner tile = %v, want water", w.Tile(0, 0))
	}
}

func TestClassifyOrdering(t *testing.T) {
	p := DefaultTerrainParams()
	tests := []struct {
		h    float64
		want Tile
	}{
		{-1, TileWater},
		{p.WaterBelow - 0.01, TileWater},
		{p.WaterBelow, TileSand},
		{p.SandBelow, TileGround},
		{p.RockAbove, TileGround},
		{p.RockAbove + 0.01, TileRock},
	}
	for _, tt := range tests {
		if got := p.classify(tt.h); got != tt.want {
			t.Errorf("classify(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestResourceCountsExact(t *testing.T) {
	for _, size := range []int{20, 40, 150} {
		for _, seed := range []int32{1, 2, 3, 99, -5} {
			w := mustGenerate(t, seed, size)
			for _, spec := range DefaultResourceSpecs(size) {
				if got := w.ResourceCount(spec.Kind); got != spec.Count {
					t.Errorf("size %d seed %d: %s count = %d, want %d", size, seed, spec.Kind, got, spec.Count)
				}
			}
		}
	}
}

func TestResourcesOnWalkableTiles(t *testing.T) {
	w := mustGenerate(t, 4242, DefaultSize)
	for i, r := range w.Resources() {
		if !w.Tile(r.X, r.Y).IsPassable() {
			t.Errorf("resource %d (%s) at (%d,%d) sits on %v", i, r.Kind, r.X, r.Y, w.Tile(r.X, r.Y))
		}
		if r.X < placementMargin || r.Y < placementMargin || r.X >= w.Size-placementMargin || r.Y >= w.Size-placementMargin {
			t.Errorf("resource %d at (%d,%d) inside the border margin", i, r.X, r.Y)
		}
	}
}

func TestPlacementFallbackGuaranteesCount(t *testing.T) {
	size := 30
	tiles := SynthesizeTerrain(random.New(11), size, DefaultTerrainParams())

	// Rings entirely outside the grid reject every draw.
	specs := []ResourceSpec{
		{Kind: KindOil, Count: 12, MinDistance: 500, MaxDistance: 900, Highlight: true},
		{Kind: KindScrap, Count: 5, MinDistance: 1000, MaxDistance: 1000},
	}
	placement := PlaceResources(tiles, size, random.New(11), specs, DefaultAttemptFactor)

	counts := map[Kind]int{}
	for _, n := range placement.Nodes {
		counts[n.Kind]++
		if !tiles[n.Y*size+n.X].IsPassable() {
			t.Errorf("fallback node at (%d,%d) is not walkable", n.X, n.Y)
		}
		if n.Kind == KindOil && !n.Highlight {
			t.Errorf("oil node lost its highlight flag")
		}
	}
	if counts[KindOil] != 12 || counts[KindScrap] != 5 {
		t.Errorf("counts = %v, want oil 12 scrap 5", counts)
	}
	if placement.Fallback[KindOil] != 12 {
		t.Errorf("Fallback[oil] = %d, want 12", placement.Fallback[KindOil])
	}
}

func TestPlacementFallbackDeterministic(t *testing.T) {
	size := 24
	tiles := SynthesizeTerrain(random.New(3), size, DefaultTerrainParams())
	specs := []ResourceSpec{{Kind: KindFood, Count: 40, MinDistance: 200, MaxDistance: 300}}

	a := PlaceResources(tiles, size, random.New(3), specs, 2)
	b := PlaceResources(tiles, size, random.New(3), specs, 2)
	if len(a.Nodes) != 40 || len(b.Nodes) != 40 {
		t.Fatalf("node counts = %d, %d, want 40", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			t.Errorf("node %d mismatch: %+v != %+v", i, a.Nodes[i], b.Nodes[i])
		}
	}
}

func TestPlacementTinyGrid(t *testing.T) {
	// Only the spawn disk is walkable and the margin swallows everything.
	for size := 1; size <= 4; size++ {
		tiles := SynthesizeTerrain(random.New(1), size, DefaultTerrainParams())
		specs := []ResourceSpec{{Kind: KindWood, Count: 3, MinDistance: 10, MaxDistance: 20}}
		placement := PlaceResources(tiles, size, random.New(1), specs, DefaultAttemptFactor)
		if len(placement.Nodes) != 3 {
			t.Errorf("size %d: placed %d nodes, want 3", size, len(placement.Nodes))
		}
	}
}

func TestCollectLatch(t *testing.T) {
	w := mustGenerate(t, 5, 60)
	kind, ok := w.Collect(0)
	if !ok {
		t.Fatal("first Collect(0) should succeed")
	}
	if kind != w.resources[0].Kind {
		t.Errorf("Collect(0) kind = %s, want %s", kind, w.resources[0].Kind)
	}
	if _, ok := w.Collect(0); ok {
		t.Error("second Collect(0) should be a no-op")
	}
	if r, _ := w.Resource(0); !r.Collected {
		t.Error("resource 0 should stay collected")
	}
	if _, ok := w.Collect(-1); ok {
		t.Error("Collect(-1) should fail")
	}
}

func TestIsBlocked(t *testing.T) {
	w := mustGenerate(t, 8, 40)
	cx, cy := w.Center()
	if w.IsBlocked(cx, cy) {
		t.Error("spawn point should not be blocked")
	}

	tests := []struct {
		name   string
		px, py float64
	}{
		{"negative x", -1, cy},
		{"negative y", cx, -0.5},
		{"past right edge", float64(w.Size) * TileSize, cy},
		{"past bottom edge", cx, float64(w.Size)*TileSize + 5},
	}
	for _, tt := range tests {
		if !w.IsBlocked(tt.px, tt.py) {
			t.Errorf("IsBlocked(%s) = false, want true", tt.name)
		}
	}

	for y := 0; y < w.Size; y++ {
		for x := 0; x < w.Size; x++ {
			px, py := CellCenter(x, y)
			if got, want := w.IsBlocked(px, py), !w.Tile(x, y).IsPassable(); got != want {
				t.Fatalf("IsBlocked at cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResourcesWithinSkipsCollected(t *testing.T) {
	w := mustGenerate(t, 21, 60)
	r, _ := w.Resource(0)
	px, py := CellCenter(r.X, r.Y)

	near := w.ResourcesWithin(px, py, 1)
	if len(near) == 0 || near[0] != 0 {
		t.Fatalf("ResourcesWithin at node 0 = %v, want it to start with 0", near)
	}
	w.Collect(0)
	for _, i := range w.ResourcesWithin(px, py, 1) {
		if i == 0 {
			t.Error("collected node still reported nearby")
		}
	}
}
