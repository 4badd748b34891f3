package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/stranded/internal/gamedata"
	"github.com/samdwyer/stranded/internal/input"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/telemetry"
	"github.com/samdwyer/stranded/internal/ui"
)

// statusDuration is how long a status message stays on screen.
const statusDuration = 3 * time.Second

// Game is the terminal host for one simulation.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	sim      *sim.Simulation
	keys     *heldKeys
	state    State
	fps      int
	logger   *log.Logger
	running  bool

	status      string
	statusUntil time.Time
}

// New creates a new game instance around s.
func New(s *sim.Simulation, cfg Config, logger *log.Logger) (*Game, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		sim:      s,
		keys:     newHeldKeys(holdWindow),
		state:    StatePlaying,
		fps:      max(1, cfg.FPS),
		logger:   logger,
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits or ctx is done.
// Terminal events are read on a separate goroutine and handed over on a
// channel; only this goroutine touches the simulation.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session",
		trace.WithAttributes(
			attribute.Int64("world.seed", int64(g.sim.Seed())),
			attribute.Int("game.fps", g.fps),
		),
	)
	defer span.End()

	done := make(chan struct{})
	events := make(chan tcell.Event, 32)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(g.fps))
	defer ticker.Stop()

	g.logger.Printf("session started: seed %d", g.sim.Seed())
	last := time.Now()
	g.render(last)

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.tick(span, dt, now)
			g.render(now)
		}
	}

	close(done)
	g.screen.Close()

	snap := g.sim.Snapshot()
	span.SetAttributes(
		attribute.String("game.phase", snap.Phase.String()),
		attribute.Float64("game.elapsed", snap.Elapsed),
		attribute.Int("game.day", snap.Day),
	)
	g.logger.Printf("session ended: phase %s after %.1fs", snap.Phase, snap.Elapsed)
	return nil
}

// pollEvents forwards terminal events until the screen is closed.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// tick advances the simulation by one frame.
func (g *Game) tick(span trace.Span, dt float64, now time.Time) {
	if g.state != StatePlaying {
		return
	}
	g.sim.Update(dt, g.keys.intent(now))
	g.recordSignals(span, now)
	if g.sim.Phase().Terminal() {
		g.state = StateOver
		g.keys.releaseAll()
	}
}

func (g *Game) recordSignals(span trace.Span, now time.Time) {
	for _, sig := range g.sim.DrainSignals() {
		attrs := []attribute.KeyValue{attribute.Float64("sim.elapsed", sig.Elapsed)}
		if sig.Resource != "" {
			attrs = append(attrs, attribute.String("sim.resource", string(sig.Resource)))
		}
		span.AddEvent("sim."+sig.Kind.String(), trace.WithAttributes(attrs...))

		switch sig.Kind {
		case sim.SignalPickup:
			g.setStatus(fmt.Sprintf("+1 %s", sig.Resource), now)
		case sim.SignalFireBuilt:
			g.setStatus("Campfire lit", now)
		default:
			g.logger.Printf("%s at %.1fs: %s", sig.Kind, sig.Elapsed, sig.Message)
			g.setStatus(sig.Message, now)
		}
	}
}

func (g *Game) render(now time.Time) {
	if now.After(g.statusUntil) {
		g.status = ""
	}
	status := g.status
	if g.state == StatePaused {
		status = "Paused - press P to resume"
	}
	g.renderer.SetStatus(status)
	g.renderer.Render(g.sim.Snapshot(), g.sim.Terrain())
}

func (g *Game) setStatus(msg string, now time.Time) {
	g.status = msg
	g.statusUntil = now.Add(statusDuration)
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, translateKey(ev.Key(), ev.Rune()), now)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKey(ctx context.Context, action keyAction, now time.Time) {
	switch {
	case action.quit:
		g.running = false
	case action.pause:
		switch g.state {
		case StatePlaying:
			g.state = StatePaused
			g.keys.releaseAll()
		case StatePaused:
			g.state = StatePlaying
		}
	case g.state != StatePlaying:
		return
	case action.dir != dirNone:
		g.keys.press(action.dir, now)
	case action.cmd != input.CommandNone:
		g.runCommand(ctx, action.cmd, now)
	}
}

func (g *Game) runCommand(ctx context.Context, cmd input.Command, now time.Time) {
	span := trace.SpanFromContext(ctx)
	ok := g.sim.Apply(cmd)
	span.AddEvent("game.command", trace.WithAttributes(
		attribute.String("command", cmd.String()),
		attribute.Bool("applied", ok),
	))
	if !ok {
		g.setStatus(commandRefusal(cmd), now)
		return
	}
	if cmd == input.CommandSleep {
		g.setStatus("You sleep until morning.", now)
	}
	g.recordSignals(span, now)
}

// commandRefusal explains why a command did nothing.
func commandRefusal(cmd input.Command) string {
	switch cmd {
	case input.CommandEat:
		return "No food to eat."
	case input.CommandBuildFire:
		return "Not enough wood for a campfire."
	case input.CommandArmBeacon:
		return "The beacon needs more supplies, and you must be at the ship."
	case input.CommandSleep:
		return "You can only sleep at the ship."
	default:
		return ""
	}
}
