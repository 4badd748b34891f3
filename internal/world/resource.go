package world

// Kind identifies a collectible resource type.
type Kind string

const (
	KindFood  Kind = "food"
	KindWood  Kind = "wood"
	KindOil   Kind = "oil"
	KindScrap Kind = "scrap"
)

// Kinds lists every resource kind in display order.
var Kinds = []Kind{KindFood, KindWood, KindOil, KindScrap}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// ResourceNode is a collectible object at a fixed grid cell.
type ResourceNode struct {
	X, Y      int
	Kind      Kind
	Collected bool
	// Highlight is a hint for renderers; it has no effect on the simulation.
	Highlight bool
}
