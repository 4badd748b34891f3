package world

import (
	"math"

	"github.com/samdwyer/stranded/internal/random"
)

// TerrainParams tunes the height field and its classification.
// Radii and peak radius fractions are in tiles and fractions of the grid size.
type TerrainParams struct {
	PeakCount        int     `yaml:"peak_count"`
	PeakRadiusMin    float64 `yaml:"peak_radius_min"`
	PeakRadiusSpan   float64 `yaml:"peak_radius_span"`
	PeakStrengthMin  float64 `yaml:"peak_strength_min"`
	PeakStrengthSpan float64 `yaml:"peak_strength_span"`
	TiltAmplitude    float64 `yaml:"tilt_amplitude"`
	NoiseShiftRange  int     `yaml:"noise_shift_range"`
	NoiseAmplitude   float64 `yaml:"noise_amplitude"`
	NoiseScale       float64 `yaml:"noise_scale"`
	Base             float64 `yaml:"base"`
	ContinentBias    float64 `yaml:"continent_bias"`

	// Classification thresholds, ascending.
	WaterBelow float64 `yaml:"water_below"`
	SandBelow  float64 `yaml:"sand_below"`
	RockAbove  float64 `yaml:"rock_above"`

	SpawnInnerRadius float64 `yaml:"spawn_inner_radius"`
	SpawnOuterRadius float64 `yaml:"spawn_outer_radius"`
}

// DefaultTerrainParams returns the stock island shape.
func DefaultTerrainParams() TerrainParams {
	return TerrainParams{
		PeakCount:        9,
		PeakRadiusMin:    0.06,
		PeakRadiusSpan:   0.12,
		PeakStrengthMin:  0.35,
		PeakStrengthSpan: 0.5,
		TiltAmplitude:    0.12,
		NoiseShiftRange:  1024,
		NoiseAmplitude:   0.4,
		NoiseScale:       9,
		Base:             0.12,
		ContinentBias:    0.62,
		WaterBelow:       0.35,
		SandBelow:        0.45,
		RockAbove:        1.05,
		SpawnInnerRadius: 3,
		SpawnOuterRadius: 6,
	}
}

type peak struct {
	x, y     float64
	radius   float64
	strength float64
}

// terrainShape holds everything drawn from the random source for one island.
type terrainShape struct {
	peaks          []peak
	tiltX, tiltY   float64
	shiftX, shiftY int
}

// drawShape consumes the random source in a fixed order: every peak
// (x, y, radius, strength), then the two tilts, then the two noise shifts.
// Changing the order changes every world for every seed.
func drawShape(src random.Source, size int, p TerrainParams) terrainShape {
	n := float64(size)
	shape := terrainShape{peaks: make([]peak, 0, p.PeakCount)}
	for i := 0; i < p.PeakCount; i++ {
		x := math.Floor(src.Float64() * n)
		y := math.Floor(src.Float64() * n)
		radius := float64(n * (p.PeakRadiusMin + float64(src.Float64()*p.PeakRadiusSpan)))
		strength := p.PeakStrengthMin + float64(src.Float64()*p.PeakStrengthSpan)
		shape.peaks = append(shape.peaks, peak{x: x, y: y, radius: radius, strength: strength})
	}
	shape.tiltX = float64((src.Float64() - 0.5) * 2 * p.TiltAmplitude)
	shape.tiltY = float64((src.Float64() - 0.5) * 2 * p.TiltAmplitude)
	shape.shiftX = int(math.Floor(src.Float64() * float64(p.NoiseShiftRange)))
	shape.shiftY = int(math.Floor(src.Float64() * float64(p.NoiseShiftRange)))
	return shape
}

// SynthesizeTerrain builds the tile grid for a size x size island.
// The returned slice is row-major with length size*size.
func SynthesizeTerrain(src random.Source, size int, p TerrainParams) []Tile {
	if size < 1 {
		return nil
	}

	shape := drawShape(src, size, p)
	tiles := make([]Tile, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			tiles[y*size+x] = p.classify(heightAt(x, y, size, shape, p))
		}
	}

	clearSpawn(tiles, size, p)
	return tiles
}

// heightAt is a pure function of the cell and the drawn shape.
// Products are converted explicitly so they are rounded before being summed;
// this keeps the compiler from fusing them and the heights identical across
// architectures.
func heightAt(x, y, size int, shape terrainShape, p TerrainParams) float64 {
	c := float64(size) / 2
	half := math.Max(c, 0.5)
	ox := (float64(x) + 0.5 - c) / half
	oy := (float64(y) + 0.5 - c) / half

	h := p.Base
	h += float64(p.ContinentBias * (1 - hypot(ox, oy)))
	h += float64(shape.tiltX*ox) + float64(shape.tiltY*oy)

	nx, ny := x+shape.shiftX, y+shape.shiftY
	n := float64(0.65*valueNoise(nx, ny, p.NoiseScale)) + float64(0.35*valueNoise(nx, ny, p.NoiseScale/2))
	h += float64(p.NoiseAmplitude * (n - 0.5))

	for _, pk := range shape.peaks {
		d := hypot(float64(x)-pk.x, float64(y)-pk.y)
		h += math.Max(0, float64(pk.strength*(1-d/pk.radius)))
	}
	return h
}

func (p TerrainParams) classify(h float64) Tile {
	switch {
	case h < p.WaterBelow:
		return TileWater
	case h < p.SandBelow:
		return TileSand
	case h <= p.RockAbove:
		return TileGround
	default:
		return TileRock
	}
}

// clearSpawn overrides classification around the grid center so the spawn
// point is always walkable.
func clearSpawn(tiles []Tile, size int, p TerrainParams) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := CenterDistance(x, y, size)
			switch {
			case d <= p.SpawnInnerRadius:
				tiles[y*size+x] = TileGround
			case d <= p.SpawnOuterRadius:
				tiles[y*size+x] = TileSand
			}
		}
	}
}

// CenterDistance returns the distance in tiles from the center of cell (x, y)
// to the center of a size x size grid.
func CenterDistance(x, y, size int) float64 {
	c := float64(size) / 2
	return hypot(float64(x)+0.5-c, float64(y)+0.5-c)
}

// hypot is sqrt(dx*dx + dy*dy) with both squares rounded before the sum.
// math.Hypot's generic path leaves 1+q*q open to fusing on some targets.
func hypot(dx, dy float64) float64 {
	return math.Sqrt(float64(dx*dx) + float64(dy*dy))
}

// hash2 maps a lattice point to [0, 1) with integer mixing only.
func hash2(x, y int) float64 {
	h := uint32(int32(x))*374761393 + uint32(int32(y))*668265263
	h = (h ^ h>>13) * 1274126177
	h ^= h >> 16
	return float64(h) / 4294967296
}

// valueNoise is smoothed lattice noise with the given cell scale.
func valueNoise(x, y int, scale float64) float64 {
	if scale <= 0 {
		return hash2(x, y)
	}
	fx, fy := float64(x)/scale, float64(y)/scale
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := smoothstep(fx-x0), smoothstep(fy-y0)
	ix, iy := int(x0), int(y0)

	top := lerp(hash2(ix, iy), hash2(ix+1, iy), tx)
	bottom := lerp(hash2(ix, iy+1), hash2(ix+1, iy+1), tx)
	return lerp(top, bottom, ty)
}

func smoothstep(t float64) float64 {
	return float64(t*t) * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + float64((b-a)*t)
}
