package gamedata

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/stranded/internal/world"
)

// glyphDef is one palette entry as written in palette.yaml.
type glyphDef struct {
	Glyph string `yaml:"glyph"`
	FG    string `yaml:"fg"`
	BG    string `yaml:"bg"`
}

type paletteFile struct {
	Tiles     map[string]glyphDef `yaml:"tiles"`
	Resources map[string]glyphDef `yaml:"resources"`
	Player    glyphDef            `yaml:"player"`
	Ship      glyphDef            `yaml:"ship"`
	Fire      glyphDef            `yaml:"fire"`
	FireSpent glyphDef            `yaml:"fire_spent"`
	Highlight string              `yaml:"highlight"`
	NightDim  float64             `yaml:"night_dim"`
}

// Sprite is a resolved glyph ready for drawing.
type Sprite struct {
	Rune rune
	FG   tcell.Color
	BG   tcell.Color
}

// Style returns the sprite's style with colors scaled by brightness.
func (s Sprite) Style(brightness float64) tcell.Style {
	return tcell.StyleDefault.
		Foreground(Dim(s.FG, brightness)).
		Background(Dim(s.BG, brightness))
}

// Palette maps world objects to sprites.
type Palette struct {
	tiles     map[world.Tile]Sprite
	resources map[world.Kind]Sprite

	Player    Sprite
	Ship      Sprite
	Fire      Sprite
	FireSpent Sprite
	Highlight tcell.Color
	NightDim  float64
}

var allTiles = []world.Tile{world.TileGround, world.TileWater, world.TileRock, world.TileSand}

// LoadPalette loads the embedded palette.yaml. Every tile and resource kind
// must have an entry.
func LoadPalette() (*Palette, error) {
	file, err := Load[paletteFile]("palette.yaml")
	if err != nil {
		return nil, err
	}
	return newPalette(file)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

func newPalette(file paletteFile) (*Palette, error) {
	p := &Palette{
		tiles:     make(map[world.Tile]Sprite, len(allTiles)),
		resources: make(map[world.Kind]Sprite, len(world.Kinds)),
		NightDim:  file.NightDim,
	}
	var errs []error

	for _, t := range allTiles {
		def, ok := file.Tiles[t.String()]
		if !ok {
			errs = append(errs, fmt.Errorf("palette: missing tile %q", t))
			continue
		}
		s, err := def.sprite()
		if err != nil {
			errs = append(errs, fmt.Errorf("palette: tile %q: %w", t, err))
		}
		p.tiles[t] = s
	}
	for _, k := range world.Kinds {
		def, ok := file.Resources[string(k)]
		if !ok {
			errs = append(errs, fmt.Errorf("palette: missing resource %q", k))
			continue
		}
		s, err := def.sprite()
		if err != nil {
			errs = append(errs, fmt.Errorf("palette: resource %q: %w", k, err))
		}
		p.resources[k] = s
	}

	for name, entry := range map[string]struct {
		def glyphDef
		dst *Sprite
	}{
		"player":     {file.Player, &p.Player},
		"ship":       {file.Ship, &p.Ship},
		"fire":       {file.Fire, &p.Fire},
		"fire_spent": {file.FireSpent, &p.FireSpent},
	} {
		s, err := entry.def.sprite()
		if err != nil {
			errs = append(errs, fmt.Errorf("palette: %s: %w", name, err))
		}
		*entry.dst = s
	}

	hl, err := parseOptionalColor(file.Highlight)
	if err != nil {
		errs = append(errs, fmt.Errorf("palette: highlight: %w", err))
	}
	p.Highlight = hl

	if p.NightDim <= 0 || p.NightDim > 1 {
		errs = append(errs, fmt.Errorf("palette: night_dim must be in (0, 1], got %v", p.NightDim))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return p, nil
}

func (d glyphDef) sprite() (Sprite, error) {
	s := Sprite{Rune: '?'}
	for _, r := range d.Glyph {
		s.Rune = r
		break
	}
	var err error
	if s.FG, err = parseOptionalColor(d.FG); err != nil {
		return s, err
	}
	if s.BG, err = parseOptionalColor(d.BG); err != nil {
		return s, err
	}
	return s, nil
}

// Tile returns the sprite for a terrain tile.
func (p *Palette) Tile(t world.Tile) Sprite {
	if s, ok := p.tiles[t]; ok {
		return s
	}
	return Sprite{Rune: '?', FG: tcell.ColorDefault, BG: tcell.ColorDefault}
}

// Resource returns the sprite for a resource kind.
func (p *Palette) Resource(k world.Kind) Sprite {
	if s, ok := p.resources[k]; ok {
		return s
	}
	return Sprite{Rune: '?', FG: tcell.ColorDefault, BG: tcell.ColorDefault}
}
