package rl

// DecayMode selects how a DecayingFloat shrinks on each Decay call.
type DecayMode string

const (
	// DecayExponential multiplies the value by the factor each step.
	DecayExponential DecayMode = "exp"
	// DecayLinear subtracts the factor each step.
	DecayLinear DecayMode = "linear"
)

// DecayingFloat is a scalar that shrinks one step at a time, typically the
// exploration probability epsilon. A fresh DecayingFloat behaves like a plain
// constant; SetDecay and SetFloor configure the schedule. An unrecognized
// mode leaves the value untouched rather than failing.
type DecayingFloat struct {
	initial float64
	value   float64

	factor    float64
	hasFactor bool
	mode      DecayMode

	floor    float64
	hasFloor bool
}

// NewDecayingFloat returns a non-decaying value.
func NewDecayingFloat(initial float64) *DecayingFloat {
	return &DecayingFloat{initial: initial, value: initial}
}

// SetDecay configures the per-step decay factor and mode.
func (d *DecayingFloat) SetDecay(factor float64, mode DecayMode) {
	d.factor = factor
	d.hasFactor = true
	d.mode = mode
}

// SetFloor configures the lowest value Decay may reach. Without a floor,
// exponential decay approaches zero and linear decay may go negative.
func (d *DecayingFloat) SetFloor(floor float64) {
	d.floor = floor
	d.hasFloor = true
}

// Value returns the current value.
func (d *DecayingFloat) Value() float64 {
	return d.value
}

// SetValue overrides the current value without touching the schedule. Used
// when restoring from a snapshot.
func (d *DecayingFloat) SetValue(value float64) {
	d.value = value
}

// Reset restores the initial value.
func (d *DecayingFloat) Reset() {
	d.value = d.initial
}

// Decay performs one decay step and clamps to the floor if one is set. With
// no factor configured, or an unrecognized mode, it does nothing.
func (d *DecayingFloat) Decay() {
	if !d.hasFactor {
		return
	}

	switch d.mode {
	case DecayExponential:
		d.value *= d.factor
	case DecayLinear:
		d.value -= d.factor
	}

	if d.hasFloor && d.value < d.floor {
		d.value = d.floor
	}
}
