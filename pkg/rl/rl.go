// Package rl implements tabular reinforcement-learning policies for the UAV
// trajectory problem: SARSA (on-policy TD control), Q-learning (off-policy)
// and a random baseline. Learners are single-goroutine by design; the trainer
// drives them strictly sequentially.
package rl

// State is what a learner needs to know about an environment state: a
// canonical key for indexing the value table, and the set of actions the
// environment accepts in that state. Actions are small non-negative integers.
type State interface {
	Key() string
	ValidActions() []int
}

// Learner selects actions and learns from rewards.
type Learner interface {
	// GetAction returns the next action for state. A nil reward skips the
	// learning update, which is how the very first call of a run and pure
	// baselines behave.
	GetAction(state State, reward *float64) int

	// SetExploration switches exploration on or off and returns the previous
	// setting, so callers can restore it after a greedy evaluation episode.
	SetExploration(enabled bool) bool

	// LoadData restores learner state from a snapshot. It returns the last
	// completed round, or -1 when no snapshot exists. A structurally invalid
	// snapshot is an error; training must not silently continue on corrupt
	// state.
	LoadData() (int, error)

	// SaveData persists learner state tagged with the given round. Each call
	// writes a new uniquely named snapshot.
	SaveData(round int) error
}
