package scenario

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/input"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/telemetry"
	"github.com/samdwyer/stranded/internal/world"
)

// StepDT is the fixed frame length scenarios run at.
const StepDT = 1.0 / 60

// Runner executes scenarios. Seed and Size apply to scenarios that do not
// set their own.
type Runner struct {
	Tuning sim.Tuning
	Seed   int32
	Size   int
	Logger *log.Logger
}

// Report is the outcome of one scenario run.
type Report struct {
	Name    string
	Seed    int32
	Size    int
	Phase   sim.Phase
	Day     int
	Elapsed float64
	Signals map[sim.SignalKind]int
	// Refused lists commands that had no effect, as "step N: name".
	Refused  []string
	Checks   int
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// String summarizes the report in a few lines.
func (r *Report) String() string {
	var b strings.Builder
	result := "PASS"
	if !r.Passed() {
		result = "FAIL"
	}
	fmt.Fprintf(&b, "%s %s (seed %d, size %d): %s on day %d after %.2fs, %d checks\n",
		result, r.Name, r.Seed, r.Size, r.Phase, r.Day, r.Elapsed, r.Checks)
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	return b.String()
}

// RunFile loads and runs the scenario at path.
func (r *Runner) RunFile(ctx context.Context, path string) (*Report, error) {
	scn, err := Load(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, scn)
}

// Run executes every step of scn against a freshly generated world. Failed
// expectations are collected in the report; only setup problems return an
// error.
func (r *Runner) Run(ctx context.Context, scn *Scenario) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	seed := r.Seed
	if scn.HasSeed {
		seed = scn.Seed
	}
	size := r.Size
	if scn.Size > 0 {
		size = scn.Size
	}
	if size == 0 {
		size = world.DefaultSize
	}

	tracer := telemetry.Tracer("scenario")
	ctx, span := tracer.Start(ctx, "scenario.run", trace.WithAttributes(
		attribute.String("scenario.name", scn.Name),
		attribute.Int64("world.seed", int64(seed)),
		attribute.Int("world.size", size),
		attribute.Int("scenario.steps", len(scn.Steps)),
	))
	defer span.End()

	w, err := world.Generate(ctx, seed, size, r.Tuning.World)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "world generation failed")
		return nil, fmt.Errorf("scenario %s: %w", scn.Name, err)
	}
	w.LogSummary(logger)

	report := &Report{
		Name:    scn.Name,
		Seed:    seed,
		Size:    size,
		Signals: map[sim.SignalKind]int{},
	}
	s := sim.New(w, r.Tuning, sim.Options{
		OnSignal: func(sig sim.Signal) {
			report.Signals[sig.Kind]++
			span.AddEvent("sim."+sig.Kind.String(), trace.WithAttributes(
				attribute.Float64("sim.elapsed", sig.Elapsed),
			))
		},
	})

	for i, step := range scn.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := runStep(s, report, logger, i+1, step); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scenario %s: %w", scn.Name, err)
		}
	}

	snap := s.Snapshot()
	report.Phase = snap.Phase
	report.Day = snap.Day
	report.Elapsed = snap.Elapsed

	span.SetAttributes(
		attribute.String("scenario.phase", report.Phase.String()),
		attribute.Int("scenario.checks", report.Checks),
		attribute.Int("scenario.failures", len(report.Failures)),
	)
	if !report.Passed() {
		span.SetStatus(codes.Error, "expectations failed")
	}
	logger.Printf("scenario %s: %s, %d checks, %d failures",
		scn.Name, report.Phase, report.Checks, len(report.Failures))
	return report, nil
}

func runStep(s *sim.Simulation, report *Report, logger *log.Logger, n int, step Step) error {
	args := step.Args
	switch step.Kind {
	case "move":
		intent := input.Intent{DX: args["dx"].(float64), DY: args["dy"].(float64)}
		advance(s, intent, args["seconds"].(float64))
	case "wait":
		advance(s, input.Intent{}, args["seconds"].(float64))
	case "command":
		cmd := args["command"].(input.Command)
		if !s.Apply(cmd) {
			report.Refused = append(report.Refused, fmt.Sprintf("step %d: %s", n, cmd))
			logger.Printf("step %d: %s had no effect", n, cmd)
		}
	case "give":
		s.Give(args["kind"].(world.Kind), args["n"].(int))
	case "set_vital":
		s.SetVital(args["vital"].(entity.Vital), args["value"].(float64))
	case "teleport":
		x, y := world.CellCenter(args["x"].(int), args["y"].(int))
		s.Teleport(x, y)
	case "goto_ship":
		snap := s.Snapshot()
		s.Teleport(snap.ShipX, snap.ShipY)
	case "set_time":
		s.SetTimeOfDay(args["time"].(float64))
	case "expect":
		exp := args["expect"].(Expectation)
		report.Checks++
		for _, f := range exp.check(s.Snapshot(), report.Signals) {
			report.Failures = append(report.Failures, fmt.Sprintf("step %d: %s", n, f))
		}
	default:
		return fmt.Errorf("step %d: unknown step kind %q", n, step.Kind)
	}
	return nil
}

// advance runs whole frames covering seconds, stopping early once the
// session has ended.
func advance(s *sim.Simulation, intent input.Intent, seconds float64) {
	frames := int(math.Round(seconds / StepDT))
	for range frames {
		if s.Phase().Terminal() {
			return
		}
		s.Update(StepDT, intent)
	}
}
