// Package scenario loads scripted play sessions written in Lua and runs them
// headless against a simulation.
package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/input"
	"github.com/samdwyer/stranded/internal/world"
)

const scenarioTypeName = "scenario"

// Scenario is a named, ordered list of steps.
type Scenario struct {
	Name string
	// Seed is used when HasSeed is set; otherwise the runner picks.
	Seed    int32
	HasSeed bool
	// Size is the world size in tiles, or 0 for the runner default.
	Size  int
	Steps []Step
}

// Step is one scripted action. Args hold values already validated and
// converted by the Lua binding.
type Step struct {
	Kind string
	Args map[string]any
}

// Load reads a scenario script from disk. The script must return the value
// built with Scenario.new.
func Load(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scn, err := finish(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scn.Name) == "" {
		scn.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scn, nil
}

// LoadString is Load for a script held in memory.
func LoadString(name, src string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadString(state, src); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scn, err := finish(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scn.Name) == "" {
		scn.Name = name
	}
	return scn, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state)
	registerScenarioConstructor(state)
	return state
}

func finish(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scn, ok := ud.(*Scenario)
	if !ok || scn == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scn, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	scn := &Scenario{Name: lua.OptString(state, 1, "")}
	opts := optionalTable(state, 2)
	for key, value := range opts {
		switch key {
		case "seed":
			n, ok := value.(int)
			if !ok || n < math.MinInt32 || n > math.MaxInt32 {
				lua.ArgumentError(state, 2, "seed must be a 32-bit integer")
			}
			scn.Seed, scn.HasSeed = int32(n), true
		case "size":
			n, ok := value.(int)
			if !ok || n < 1 {
				lua.ArgumentError(state, 2, "size must be a positive integer")
			}
			scn.Size = n
		default:
			lua.ArgumentError(state, 2, fmt.Sprintf("unknown option %q", key))
		}
	}
	state.PushUserData(scn)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "move", Function: scenarioMove},
	{Name: "wait", Function: scenarioWait},
	{Name: "eat", Function: commandStep(input.CommandEat)},
	{Name: "build_fire", Function: commandStep(input.CommandBuildFire)},
	{Name: "arm_beacon", Function: commandStep(input.CommandArmBeacon)},
	{Name: "sleep", Function: commandStep(input.CommandSleep)},
	{Name: "command", Function: scenarioCommand},
	{Name: "give", Function: scenarioGive},
	{Name: "set_vital", Function: scenarioSetVital},
	{Name: "teleport", Function: scenarioTeleport},
	{Name: "goto_ship", Function: scenarioGotoShip},
	{Name: "set_time", Function: scenarioSetTime},
	{Name: "expect", Function: scenarioExpect},
}

// Every method returns the scenario so calls can be chained.

func scenarioMove(state *lua.State) int {
	scn := checkScenario(state)
	dx := lua.CheckNumber(state, 2)
	dy := lua.CheckNumber(state, 3)
	seconds := checkDuration(state, 4)
	appendStep(scn, "move", map[string]any{"dx": dx, "dy": dy, "seconds": seconds})
	return self(state)
}

func scenarioWait(state *lua.State) int {
	scn := checkScenario(state)
	appendStep(scn, "wait", map[string]any{"seconds": checkDuration(state, 2)})
	return self(state)
}

func commandStep(cmd input.Command) lua.Function {
	return func(state *lua.State) int {
		scn := checkScenario(state)
		appendStep(scn, "command", map[string]any{"command": cmd})
		return self(state)
	}
}

func scenarioCommand(state *lua.State) int {
	scn := checkScenario(state)
	cmd, err := input.ParseCommand(lua.CheckString(state, 2))
	if err != nil {
		lua.ArgumentError(state, 2, err.Error())
	}
	appendStep(scn, "command", map[string]any{"command": cmd})
	return self(state)
}

func scenarioGive(state *lua.State) int {
	scn := checkScenario(state)
	kind, ok := world.ParseKind(lua.CheckString(state, 2))
	if !ok {
		lua.ArgumentError(state, 2, "unknown resource")
	}
	n := lua.CheckInteger(state, 3)
	if n < 0 {
		lua.ArgumentError(state, 3, "count must not be negative")
	}
	appendStep(scn, "give", map[string]any{"kind": kind, "n": n})
	return self(state)
}

func scenarioSetVital(state *lua.State) int {
	scn := checkScenario(state)
	vital, ok := entity.ParseVital(lua.CheckString(state, 2))
	if !ok {
		lua.ArgumentError(state, 2, "unknown vital")
	}
	appendStep(scn, "set_vital", map[string]any{"vital": vital, "value": lua.CheckNumber(state, 3)})
	return self(state)
}

// scenarioTeleport takes tile coordinates and places the player on that
// tile's center.
func scenarioTeleport(state *lua.State) int {
	scn := checkScenario(state)
	x := lua.CheckInteger(state, 2)
	y := lua.CheckInteger(state, 3)
	appendStep(scn, "teleport", map[string]any{"x": x, "y": y})
	return self(state)
}

func scenarioGotoShip(state *lua.State) int {
	scn := checkScenario(state)
	appendStep(scn, "goto_ship", nil)
	return self(state)
}

func scenarioSetTime(state *lua.State) int {
	scn := checkScenario(state)
	t := lua.CheckNumber(state, 2)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		lua.ArgumentError(state, 2, "time must be finite")
	}
	appendStep(scn, "set_time", map[string]any{"time": t})
	return self(state)
}

func scenarioExpect(state *lua.State) int {
	scn := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	exp, err := parseExpectation(tableToMap(state, 2))
	if err != nil {
		lua.ArgumentError(state, 2, err.Error())
	}
	appendStep(scn, "expect", map[string]any{"expect": exp})
	return self(state)
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scn, ok := ud.(*Scenario); ok && scn != nil {
		return scn
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func checkDuration(state *lua.State, index int) float64 {
	seconds := lua.CheckNumber(state, index)
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		lua.ArgumentError(state, index, "duration must be a non-negative number of seconds")
	}
	return seconds
}

func self(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func appendStep(scn *Scenario, kind string, data map[string]any) int {
	if scn == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scn.Steps = append(scn.Steps, Step{Kind: kind, Args: data})
	return len(scn.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToMap(state, index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 && math.Abs(value) < 1<<53 {
		return int(value)
	}
	return value
}
