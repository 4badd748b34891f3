package world

import "testing"

func TestTileString(t *testing.T) {
	tests := []struct {
		tile     Tile
		expected string
		passable bool
	}{
		{TileGround, "ground", true},
		{TileWater, "water", false},
		{TileRock, "rock", false},
		{TileSand, "sand", true},
		{Tile(99), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.tile.String(); got != tt.expected {
			t.Errorf("Tile(%d).String() = %q, want %q", tt.tile, got, tt.expected)
		}
		if got := tt.tile.IsPassable(); got != tt.passable {
			t.Errorf("Tile(%d).IsPassable() = %v, want %v", tt.tile, got, tt.passable)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(string(k))
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = (%q, %v)", k, got, ok)
		}
	}
	if _, ok := ParseKind("gold"); ok {
		t.Error("ParseKind(\"gold\") should fail")
	}
}
