package rl

import (
	"math/rand"
	"time"
)

// Default hyperparameters, shared by SARSA and QLearning.
const (
	defaultAlpha = 0.3 // learning rate
	defaultGamma = 0.9 // discount factor

	defaultEpsilonInitial = 0.9
	defaultEpsilonFactor  = 1.0 - 1e-8
	defaultEpsilonFloor   = 0.05
)

func defaultEpsilon() *DecayingFloat {
	eps := NewDecayingFloat(defaultEpsilonInitial)
	eps.SetDecay(defaultEpsilonFactor, DecayExponential)
	eps.SetFloor(defaultEpsilonFloor)
	return eps
}

// SARSA is an on-policy temporal-difference learner. It updates the value of
// the previous (state, action) pair using the action it actually selects for
// the next state, which is the defining contrast with off-policy Q-learning.
type SARSA struct {
	name        string
	numActions  int
	exploration bool

	table   *QTable
	alpha   float64
	gamma   float64
	epsilon *DecayingFloat

	// Most recent (state, action) pair, replaced on every GetAction call.
	prevState  State
	prevAction int

	rng *rand.Rand
}

// NewSARSA creates a SARSA learner for an action space of numActions.
// exploration selects epsilon-greedy mode; with it off, the learner always
// exploits (it still learns from rewards).
func NewSARSA(numActions int, exploration bool) *SARSA {
	return &SARSA{
		name:        "SARSA",
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
func (s *SARSA) Name() string { return s.name }

// Epsilon returns the current exploration probability.
func (s *SARSA) Epsilon() float64 { return s.epsilon.Value() }

// States returns how many distinct states the value table holds.
func (s *SARSA) States() int { return s.table.Len() }

// SetExploration switches epsilon-greedy exploration and returns the
// previous setting.
func (s *SARSA) SetExploration(enabled bool) bool {
	prev := s.exploration
	s.exploration = enabled
	return prev
}

// GetAction chooses the next action for state and, when a prior pair and a
// reward are available, applies the SARSA update
//
//	Q(s,a) += alpha * (reward + gamma*Q(s1,a1) - Q(s,a))
//
// where a1 is the action chosen for s1 in this very call. Epsilon decays
// exactly once per call, whichever branch was taken.
func (s *SARSA) GetAction(state State, reward *float64) int {
	a1 := epsilonGreedy(s.table, state, s.epsilon.Value(), s.exploration, s.rng)
	s.epsilon.Decay()

	if s.prevState != nil && reward != nil {
		q := s.table.Get(s.prevState.Key())[s.prevAction]
		q1 := s.table.Get(state.Key())[a1]
		s.table.Set(s.prevState.Key(), s.prevAction,
			q+s.alpha*(*reward+s.gamma*q1-q))
	}

	s.prevState = state
	s.prevAction = a1
	return a1
}

// LoadData restores the value table and epsilon from "<name>-load.json".
func (s *SARSA) LoadData() (int, error) {
	return loadSnapshot(s.name, s.table, s.epsilon)
}

// SaveData writes the value table to a new timestamped snapshot.
func (s *SARSA) SaveData(round int) error {
	return saveSnapshot(s.name, s.table, s.epsilon, round)
}

// epsilonGreedy implements epsilon-greedy selection over the valid actions
// of state. Exploitation breaks value ties uniformly at random among all
// argmax actions; first-index bias would skew early training when every row
// is still zero.
func epsilonGreedy(table *QTable, state State, eps float64, explore bool, rng *rand.Rand) int {
	valid := state.ValidActions()

	if explore && rng.Float64() < eps {
		return valid[rng.Intn(len(valid))]
	}

	row := table.Get(state.Key())
	best := row[valid[0]]
	for _, a := range valid[1:] {
		if row[a] > best {
			best = row[a]
		}
	}
	var ties []int
	for _, a := range valid {
		if row[a] == best {
			ties = append(ties, a)
		}
	}
	return ties[rng.Intn(len(ties))]
}
