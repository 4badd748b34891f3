package input

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Command is a discrete player action.
type Command int

const (
	CommandNone Command = iota
	CommandEat
	CommandBuildFire
	CommandArmBeacon
	CommandSleep
)

// String returns the canonical command name.
func (c Command) String() string {
	switch c {
	case CommandEat:
		return "eat"
	case CommandBuildFire:
		return "build_fire"
	case CommandArmBeacon:
		return "arm_beacon"
	case CommandSleep:
		return "sleep"
	default:
		return "none"
	}
}

type commandDef struct {
	command Command
	aliases []string
}

var commandDefs = []commandDef{
	{CommandEat, []string{"eat", "food", "consume"}},
	{CommandBuildFire, []string{"build_fire", "fire", "campfire", "build fire", "light fire"}},
	{CommandArmBeacon, []string{"arm_beacon", "beacon", "arm beacon", "signal"}},
	{CommandSleep, []string{"sleep", "sleep at ship", "rest at ship"}},
}

// ParseCommand resolves a command name. Canonical names and aliases match
// exactly (case and surrounding space ignored, '-' and '_' treated as
// spaces); otherwise the closest alias within a small edit distance wins.
func ParseCommand(name string) (Command, error) {
	in := normalise(name)
	if in == "" {
		return CommandNone, fmt.Errorf("empty command")
	}

	best, bestDist := CommandNone, -1
	for _, def := range commandDefs {
		for _, alias := range def.aliases {
			alias = normalise(alias)
			if alias == in {
				return def.command, nil
			}
			dist := levenshtein.ComputeDistance(in, alias)
			if dist > distanceLimit(len(alias)) {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = def.command, dist
			}
		}
	}
	if best == CommandNone {
		return CommandNone, fmt.Errorf("unknown command %q", name)
	}
	return best, nil
}

func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func distanceLimit(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
