package game

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/input"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/world"
)

// newHeadlessGame builds a Game without a terminal. Only the input and tick
// paths may be used.
func newHeadlessGame(t *testing.T) *Game {
	t.Helper()
	tuning := sim.DefaultTuning()
	w, err := world.Generate(context.Background(), 99, 60, tuning.World)
	if err != nil {
		t.Fatalf("world.Generate() error: %v", err)
	}
	return &Game{
		sim:     sim.New(w, tuning, sim.Options{}),
		keys:    newHeldKeys(holdWindow),
		state:   StatePlaying,
		fps:     30,
		logger:  log.New(io.Discard, "", 0),
		running: true,
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want keyAction
	}{
		{"escape", tcell.KeyEscape, 0, keyAction{quit: true}},
		{"ctrl-c", tcell.KeyCtrlC, 0, keyAction{quit: true}},
		{"arrow up", tcell.KeyUp, 0, keyAction{dir: dirUp}},
		{"arrow left", tcell.KeyLeft, 0, keyAction{dir: dirLeft}},
		{"w", tcell.KeyRune, 'w', keyAction{dir: dirUp}},
		{"D", tcell.KeyRune, 'D', keyAction{dir: dirRight}},
		{"eat", tcell.KeyRune, 'q', keyAction{cmd: input.CommandEat}},
		{"fire", tcell.KeyRune, 'f', keyAction{cmd: input.CommandBuildFire}},
		{"beacon", tcell.KeyRune, 'B', keyAction{cmd: input.CommandArmBeacon}},
		{"sleep", tcell.KeyRune, 'r', keyAction{cmd: input.CommandSleep}},
		{"pause", tcell.KeyRune, 'p', keyAction{pause: true}},
		{"unbound rune", tcell.KeyRune, 'z', keyAction{}},
		{"unbound key", tcell.KeyTab, 0, keyAction{}},
	}

	for _, tt := range tests {
		if got := translateKey(tt.key, tt.r); got != tt.want {
			t.Errorf("translateKey(%s) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestHeldKeysIntent(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	if got := h.intent(start); !got.Resting() {
		t.Errorf("intent() with no presses = %+v, want resting", got)
	}

	h.press(dirRight, start)
	h.press(dirUp, start.Add(20*time.Millisecond))
	if got := h.intent(start.Add(50 * time.Millisecond)); got != (input.Intent{DX: 1, DY: -1}) {
		t.Errorf("intent() while holding right+up = %+v", got)
	}

	// Right expires first.
	if got := h.intent(start.Add(110 * time.Millisecond)); got != (input.Intent{DY: -1}) {
		t.Errorf("intent() after right expired = %+v, want up only", got)
	}

	h.press(dirLeft, start.Add(110*time.Millisecond))
	h.press(dirRight, start.Add(110*time.Millisecond))
	if got := h.intent(start.Add(115 * time.Millisecond)); got.DX != 0 {
		t.Errorf("opposite directions should cancel, got %+v", got)
	}

	h.releaseAll()
	if got := h.intent(start.Add(115 * time.Millisecond)); !got.Resting() {
		t.Errorf("intent() after releaseAll = %+v, want resting", got)
	}
}

func TestHandleKeyMovesPlayer(t *testing.T) {
	g := newHeadlessGame(t)
	span := trace.SpanFromContext(context.Background())
	now := time.Unix(2000, 0)
	before := g.sim.Snapshot().Player

	g.handleKey(context.Background(), keyAction{dir: dirRight}, now)
	g.tick(span, 0.05, now.Add(10*time.Millisecond))

	after := g.sim.Snapshot().Player
	if after.X <= before.X {
		t.Errorf("player X = %v after moving right from %v", after.X, before.X)
	}
	if after.Y != before.Y {
		t.Errorf("player Y changed from %v to %v", before.Y, after.Y)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newHeadlessGame(t)
	span := trace.SpanFromContext(context.Background())
	now := time.Unix(3000, 0)

	g.handleKey(context.Background(), keyAction{pause: true}, now)
	if g.state != StatePaused {
		t.Fatalf("state = %v, want paused", g.state)
	}
	g.tick(span, 0.05, now)
	if e := g.sim.Snapshot().Elapsed; e != 0 {
		t.Errorf("elapsed while paused = %v, want 0", e)
	}

	g.handleKey(context.Background(), keyAction{cmd: input.CommandEat}, now)
	if food := g.sim.Snapshot().Inventory[world.KindFood]; food != 1 {
		t.Errorf("command ran while paused: food = %d", food)
	}

	g.handleKey(context.Background(), keyAction{pause: true}, now)
	g.tick(span, 0.05, now)
	if e := g.sim.Snapshot().Elapsed; e == 0 {
		t.Error("simulation should resume after unpausing")
	}
}

func TestCommandKeys(t *testing.T) {
	g := newHeadlessGame(t)
	now := time.Unix(4000, 0)

	g.handleKey(context.Background(), keyAction{cmd: input.CommandEat}, now)
	if food := g.sim.Snapshot().Inventory[world.KindFood]; food != 0 {
		t.Errorf("food after eat key = %d, want 0", food)
	}

	g.handleKey(context.Background(), keyAction{cmd: input.CommandBuildFire}, now)
	if g.status != commandRefusal(input.CommandBuildFire) {
		t.Errorf("status = %q, want the campfire refusal", g.status)
	}

	g.handleKey(context.Background(), keyAction{quit: true}, now)
	if g.running {
		t.Error("quit key should stop the loop")
	}
}

func TestTerminalPhaseEndsPlay(t *testing.T) {
	g := newHeadlessGame(t)
	span := trace.SpanFromContext(context.Background())
	now := time.Unix(5000, 0)

	g.sim.Teleport(g.sim.Snapshot().ShipX+400, g.sim.Snapshot().ShipY)
	g.sim.SetTimeOfDay(75)
	for i := 0; i < 2000 && g.state == StatePlaying; i++ {
		g.sim.SetVital(entity.VitalWarmth, 0)
		g.tick(span, 0.05, now)
	}

	if g.state != StateOver {
		t.Fatalf("state = %v, want over", g.state)
	}
	if g.status == "" {
		t.Error("the death message should be shown")
	}

	g.handleKey(context.Background(), keyAction{dir: dirUp}, now)
	if !g.keys.intent(now).Resting() {
		t.Error("movement keys should be ignored once the game is over")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateOver, "over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
