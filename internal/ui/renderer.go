package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/stranded/internal/gamedata"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/world"
)

// hudHeight is the number of rows reserved under the map.
const hudHeight = 4

// Surface is what the renderer draws on. *Screen satisfies it.
type Surface interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, style tcell.Style)
	Size() (width, height int)
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  Surface
	palette *gamedata.Palette
	status  string
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen Surface, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// viewport maps grid cells to screen cells, keeping the player centered.
type viewport struct {
	originX, originY int
	width, height    int
}

func (v viewport) toScreen(cx, cy int) (int, int, bool) {
	sx, sy := cx-v.originX, cy-v.originY
	return sx, sy, sx >= 0 && sy >= 0 && sx < v.width && sy < v.height
}

// Render draws one frame: the island around the player, then the HUD, then
// the end-of-game overlay if the session is over.
func (r *Renderer) Render(snap sim.Snapshot, terrain sim.Terrain) {
	r.screen.Clear()

	width, height := r.screen.Size()
	view := viewport{width: width, height: max(0, height-hudHeight)}
	pcx, pcy := world.CellAt(snap.Player.X, snap.Player.Y)
	view.originX = pcx - view.width/2
	view.originY = pcy - view.height/2

	brightness := 1.0
	if snap.Night {
		brightness = r.palette.NightDim
	}

	for sy := 0; sy < view.height; sy++ {
		for sx := 0; sx < view.width; sx++ {
			sprite := r.palette.Tile(terrain.Tile(view.originX+sx, view.originY+sy))
			r.screen.SetContent(sx, sy, sprite.Rune, sprite.Style(brightness))
		}
	}

	for _, res := range snap.Resources {
		sprite := r.palette.Resource(res.Kind)
		if res.Highlight {
			sprite.BG = r.palette.Highlight
		} else {
			sprite.BG = r.palette.Tile(terrain.Tile(res.X, res.Y)).BG
		}
		r.drawSprite(view, res.X, res.Y, sprite, brightness)
	}

	shipX, shipY := world.CellAt(snap.ShipX, snap.ShipY)
	r.drawSprite(view, shipX, shipY, r.palette.Ship, brightness)

	for _, f := range snap.Campfires {
		fx, fy := world.CellAt(f.X, f.Y)
		sprite := r.palette.FireSpent
		if f.Active {
			sprite = r.palette.Fire
		}
		sprite.BG = r.palette.Tile(terrain.Tile(fx, fy)).BG
		r.drawSprite(view, fx, fy, sprite, brightness)
	}

	player := r.palette.Player
	player.BG = r.palette.Tile(terrain.Tile(pcx, pcy)).BG
	r.drawSprite(view, pcx, pcy, player, 1)

	r.renderHUD(snap, view.height, width)
	if r.status != "" {
		r.RenderMessage(truncate(r.status, width), 0)
	}

	if msg := overlayMessage(snap.Phase); msg != "" {
		r.renderOverlay(msg, width, view.height)
	}

	r.screen.Show()
}

func (r *Renderer) drawSprite(v viewport, cx, cy int, s gamedata.Sprite, brightness float64) {
	if sx, sy, ok := v.toScreen(cx, cy); ok {
		r.screen.SetContent(sx, sy, s.Rune, s.Style(brightness))
	}
}

func (r *Renderer) renderHUD(snap sim.Snapshot, top, width int) {
	for i, line := range HUDLines(snap) {
		r.RenderMessage(truncate(line, width), top+i)
	}
}

// HUDLines formats the status lines shown under the map.
func HUDLines(snap sim.Snapshot) []string {
	period := "Day"
	if snap.Night {
		period = "Night"
	}
	status := fmt.Sprintf("Day %d  %s %02.0f/%.0fs  Seed %d  %s",
		snap.Day, period, snap.TimeOfDay, snap.DayLength, snap.Seed, snap.Phase)

	vitals := fmt.Sprintf("Health %s %3.0f  Energy %s %3.0f  Warmth %s %3.0f",
		bar(snap.Player.Health), snap.Player.Health,
		bar(snap.Player.Energy), snap.Player.Energy,
		bar(snap.Player.Warmth), snap.Player.Warmth)
	if snap.NearShip {
		vitals += "  [ship]"
	} else if snap.NearFire {
		vitals += "  [fire]"
	}

	var inv strings.Builder
	for i, k := range world.Kinds {
		if i > 0 {
			inv.WriteString("  ")
		}
		fmt.Fprintf(&inv, "%s %d", k, snap.Inventory[k])
	}
	switch snap.Phase {
	case sim.PhaseExploring:
		if missing := formatCost(snap.BeaconCost); missing != "" {
			fmt.Fprintf(&inv, "  |  Beacon needs: %s", missing)
		} else {
			inv.WriteString("  |  Beacon ready")
		}
	case sim.PhaseBeaconArmed:
		fmt.Fprintf(&inv, "  |  Rescue in %.0fs", snap.RescueRemaining)
	}

	hint := ""
	if n := len(snap.Hints); n > 0 {
		hint = snap.Hints[n-1]
	}
	return []string{status, vitals, inv.String(), hint}
}

func formatCost(cost map[world.Kind]int) string {
	var parts []string
	for _, k := range world.Kinds {
		if n := cost[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
		}
	}
	return strings.Join(parts, ", ")
}

func bar(v float64) string {
	const slots = 10
	filled := min(slots, max(0, int(v/10+0.5)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", slots-filled) + "]"
}

func overlayMessage(p sim.Phase) string {
	switch p {
	case sim.PhaseRescued:
		return "RESCUED! A ship answered your beacon. Press Esc to quit."
	case sim.PhaseDead:
		return "You succumbed to the cold. Press Esc to quit."
	default:
		return ""
	}
}

func (r *Renderer) renderOverlay(msg string, width, height int) {
	msg = truncate(msg, width)
	x := max(0, (width-len([]rune(msg)))/2)
	y := height / 2
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// SetStatus sets a transient message drawn on the top row of later frames.
// An empty message clears it.
func (r *Renderer) SetStatus(msg string) {
	r.status = msg
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:max(0, width)])
}
