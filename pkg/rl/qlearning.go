package rl

import (
	"math/rand"
	"time"
)

// QLearning is the off-policy counterpart of SARSA. Action selection is the
// same epsilon-greedy policy, but the update propagates the maximum value
// over the next state's valid actions regardless of which action was
// actually chosen.
type QLearning struct {
	name        string
	numActions  int
	exploration bool

	table   *QTable
	alpha   float64
	gamma   float64
	epsilon *DecayingFloat

	prevState  State
	prevAction int

	rng *rand.Rand
}

// NewQLearning creates a Q-learning learner for an action space of
// numActions.
func NewQLearning(numActions int, exploration bool) *QLearning {
	return &QLearning{
		name:        "Q-Learning",
		numActions:  numActions,
		exploration: exploration,
		table:       NewQTable(numActions),
		alpha:       defaultAlpha,
		gamma:       defaultGamma,
		epsilon:     defaultEpsilon(),
		prevAction:  -1,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name returns the algorithm name, also used as the snapshot prefix.
func (q *QLearning) Name() string { return q.name }

// Epsilon returns the current exploration probability.
func (q *QLearning) Epsilon() float64 { return q.epsilon.Value() }

// States returns how many distinct states the value table holds.
func (q *QLearning) States() int { return q.table.Len() }

// SetExploration switches epsilon-greedy exploration and returns the
// previous setting.
func (q *QLearning) SetExploration(enabled bool) bool {
	prev := q.exploration
	q.exploration = enabled
	return prev
}

// GetAction chooses the next action and applies the Q-learning update
//
//	Q(s,a) += alpha * (reward + gamma*max_a' Q(s1,a') - Q(s,a))
//
// with the maximum taken over the valid actions of s1.
func (q *QLearning) GetAction(state State, reward *float64) int {
	a1 := epsilonGreedy(q.table, state, q.epsilon.Value(), q.exploration, q.rng)
	q.epsilon.Decay()

	if q.prevState != nil && reward != nil {
		prev := q.table.Get(q.prevState.Key())[q.prevAction]
		row := q.table.Get(state.Key())
		valid := state.ValidActions()
		maxNext := row[valid[0]]
		for _, a := range valid[1:] {
			if row[a] > maxNext {
				maxNext = row[a]
			}
		}
		q.table.Set(q.prevState.Key(), q.prevAction,
			prev+q.alpha*(*reward+q.gamma*maxNext-prev))
	}

	q.prevState = state
	q.prevAction = a1
	return a1
}

// LoadData restores the value table and epsilon from "<name>-load.json".
func (q *QLearning) LoadData() (int, error) {
	return loadSnapshot(q.name, q.table, q.epsilon)
}

// SaveData writes the value table to a new timestamped snapshot.
func (q *QLearning) SaveData(round int) error {
	return saveSnapshot(q.name, q.table, q.epsilon, round)
}
