package rl

import (
	"errors"
	"math/rand"
	"time"
)

// ErrNotPersistent is returned by SaveData on policies that carry no
// learnable state.
var ErrNotPersistent = errors.New("policy does not persist state")

// RandomPolicy draws a uniform valid action on every call. It never learns
// and never persists anything; it exists as the sanity baseline for the
// trainer.
type RandomPolicy struct {
	name string
	rng  *rand.Rand
}

// NewRandomPolicy creates the random baseline.
func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		name: "Random",
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name returns the policy name.
func (r *RandomPolicy) Name() string { return r.name }

// GetAction returns a uniformly random valid action. The reward is ignored.
func (r *RandomPolicy) GetAction(state State, reward *float64) int {
	valid := state.ValidActions()
	return valid[r.rng.Intn(len(valid))]
}

// SetExploration is a no-op; a random policy always explores.
func (r *RandomPolicy) SetExploration(enabled bool) bool { return true }

// LoadData reports that there is nothing to load.
func (r *RandomPolicy) LoadData() (int, error) { return -1, nil }

// SaveData fails with ErrNotPersistent; there is nothing to save.
func (r *RandomPolicy) SaveData(round int) error { return ErrNotPersistent }
