package route

// NoPredecessor is the Parent value of the root search state.
const NoPredecessor = -1

// SearchState is one node of the search tree. States live in an append-only
// arena and refer to their predecessor by arena index, so the tree holds no
// pointers and cannot form ownership cycles.
type SearchState struct {
	Pos    Coord
	Facing Direction // inherited unchanged from the predecessor
	Cost   int       // accumulated from the start state
	Parent int       // arena index of the predecessor, or NoPredecessor
}

// IsRoot returns true for the start state.
func (s SearchState) IsRoot() bool {
	return s.Parent == NoPredecessor
}

// Less orders states by accumulated cost alone.
func (s SearchState) Less(other SearchState) bool {
	return s.Cost < other.Cost
}
