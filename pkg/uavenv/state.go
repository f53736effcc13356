package uavenv

import "fmt"

// The four movement actions. They are plain ints because that is what the
// learner's value-table rows are indexed by.
const (
	ActionUp int = iota
	ActionDown
	ActionLeft
	ActionRight

	// NumActions is the size of the action space.
	NumActions = 4
)

// ActionName returns a short human-readable name for an action.
func ActionName(action int) string {
	switch action {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	}
	return fmt.Sprintf("action(%d)", action)
}

// State is the immutable observation handed to learners: the UAV cell and
// the number of elapsed steps. States are produced only by the environment;
// the valid-action list is a read-only view into the environment's
// precomputed mask.
type State struct {
	Col  int
	Row  int
	Step int

	valid []int
}

// Key returns the canonical table key "(col,row,step)".
func (s State) Key() string {
	return fmt.Sprintf("(%d,%d,%d)", s.Col, s.Row, s.Step)
}

// ValidActions returns the actions the environment accepts at this cell.
// Callers must not mutate the returned slice.
func (s State) ValidActions() []int {
	return s.valid
}
