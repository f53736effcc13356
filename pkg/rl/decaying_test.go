package rl

import (
	"math"
	"testing"
)

func TestDecayingFloat_NoScheduleStaysConstant(t *testing.T) {
	d := NewDecayingFloat(0.9)
	for i := 0; i < 100; i++ {
		d.Decay()
	}
	if d.Value() != 0.9 {
		t.Errorf("Expected constant 0.9, got %f", d.Value())
	}
}

func TestDecayingFloat_ExponentialConvergesToZero(t *testing.T) {
	d := NewDecayingFloat(1.0)
	d.SetDecay(0.5, DecayExponential)

	for i := 0; i < 100; i++ {
		d.Decay()
	}
	if d.Value() > 1e-12 {
		t.Errorf("Expected convergence toward 0, got %g", d.Value())
	}
	if d.Value() < 0 {
		t.Errorf("Exponential decay must not go negative, got %g", d.Value())
	}
}

func TestDecayingFloat_FloorClamp(t *testing.T) {
	d := NewDecayingFloat(0.9)
	d.SetDecay(0.5, DecayExponential)
	d.SetFloor(0.05)

	for i := 0; i < 100; i++ {
		d.Decay()
		if d.Value() < 0.05 {
			t.Fatalf("Value fell below floor: %g", d.Value())
		}
	}
	if d.Value() != 0.05 {
		t.Errorf("Expected value to settle at floor 0.05, got %g", d.Value())
	}
}

func TestDecayingFloat_Linear(t *testing.T) {
	d := NewDecayingFloat(1.0)
	d.SetDecay(0.3, DecayLinear)

	want := []float64{0.7, 0.4, 0.1, -0.2}
	for i, w := range want {
		d.Decay()
		if math.Abs(d.Value()-w) > 1e-9 {
			t.Errorf("Step %d: expected %f, got %f", i+1, w, d.Value())
		}
	}
}

func TestDecayingFloat_LinearWithFloor(t *testing.T) {
	d := NewDecayingFloat(1.0)
	d.SetDecay(0.3, DecayLinear)
	d.SetFloor(0.2)

	for i := 0; i < 10; i++ {
		d.Decay()
	}
	if d.Value() != 0.2 {
		t.Errorf("Expected floor 0.2, got %f", d.Value())
	}
}

func TestDecayingFloat_UnrecognizedModeDoesNotDecay(t *testing.T) {
	d := NewDecayingFloat(0.9)
	d.SetDecay(0.5, DecayMode("cosine"))

	d.Decay()
	if d.Value() != 0.9 {
		t.Errorf("Unrecognized mode should not decay, got %f", d.Value())
	}
}

func TestDecayingFloat_Reset(t *testing.T) {
	d := NewDecayingFloat(0.9)
	d.SetDecay(0.5, DecayExponential)

	d.Decay()
	d.Decay()
	d.Reset()
	if d.Value() != 0.9 {
		t.Errorf("Expected reset to 0.9, got %f", d.Value())
	}
}

func TestDecayingFloat_SetValue(t *testing.T) {
	d := NewDecayingFloat(0.9)
	d.SetDecay(0.5, DecayExponential)

	d.SetValue(0.4)
	if d.Value() != 0.4 {
		t.Errorf("Expected 0.4 after SetValue, got %f", d.Value())
	}
	d.Decay()
	if d.Value() != 0.2 {
		t.Errorf("Decay should continue from the set value, got %f", d.Value())
	}
}
