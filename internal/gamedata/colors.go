package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// parseOptionalColor treats an empty string as the terminal default.
func parseOptionalColor(hex string) (tcell.Color, error) {
	if hex == "" {
		return tcell.ColorDefault, nil
	}
	return ParseHexColor(hex)
}

// Dim scales an RGB color towards black. factor is clamped to [0, 1], where
// 1 leaves the color unchanged. Non-RGB colors are returned as-is.
func Dim(c tcell.Color, factor float64) tcell.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return c
	}
	factor = min(1, max(0, factor))
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	scale := func(v int32) int32 { return int32(float64(v) * factor) }
	return tcell.NewRGBColor(scale(r), scale(g), scale(b))
}
