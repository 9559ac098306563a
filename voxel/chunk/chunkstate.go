package chunk

// State is a Chunk's lifecycle state (spec.md §3): only Active and
// BuildingMesh chunks may be meshed.
type State int

const (
	Inactive State = iota
	Loading
	Generating
	Active
	BuildingMesh
	Unloading
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Loading:
		return "Loading"
	case Generating:
		return "Generating"
	case Active:
		return "Active"
	case BuildingMesh:
		return "BuildingMesh"
	case Unloading:
		return "Unloading"
	default:
		return "Unknown"
	}
}

// Meshable reports whether a chunk in this state may be meshed.
func (s State) Meshable() bool { return s == Active || s == BuildingMesh }
