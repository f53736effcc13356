package uavenv

import (
	"fmt"
	"math"
)

// Environment is the boundary the trainer drives: reset to a fresh episode,
// then step until terminated or truncated.
type Environment interface {
	Reset() (State, Info)
	Step(action int) (State, float64, bool, bool, Info)
}

// Info is the static environment description returned by Reset and Step.
type Info struct {
	Description []string
	FlightTime  int
}

// UAVEnv is the concrete grid-world environment. The static tables (the
// per-receiver rate field, NLOS masks, blockage counts and the per-cell
// valid-action lists) are computed once at construction and are read-only
// afterwards; every State shares them.
type UAVEnv struct {
	layout Layout
	comm   Comm

	rates    [][][]float64 // [receiver][col][row], bps/Hz
	nlos     [][][]bool    // [receiver][col][row], true when sight is blocked
	blockage [][]int       // [col][row], how many receivers are blocked
	valid    [][][]int     // [col][row] -> valid action list

	pos  Cell
	step int

	info Info
}

var _ Environment = (*UAVEnv)(nil)

// New builds an environment from a layout and channel model. The layout is
// validated; precomputation runs once here so stepping is table lookups.
func New(layout Layout, comm Comm) (*UAVEnv, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	e := &UAVEnv{layout: layout, comm: comm}
	e.computeShadowing()
	e.computeRates()
	e.computeValidActions()

	mapWidth := float64(layout.Width) * layout.MeterPerPixel
	mapHeight := float64(layout.Height-layout.Footer) * layout.MeterPerPixel
	altitude := float64(layout.Altitude) * layout.MeterPerPixel
	e.info = Info{
		Description: []string{
			fmt.Sprintf("The area is %.0f-by-%.0f in meters", mapWidth, mapHeight),
			fmt.Sprintf("UAV is flying at %.0f meters above ground", altitude),
			fmt.Sprintf("The flying altitude is about the height of a %.0f-story building", altitude*0.3),
		},
		FlightTime: layout.FlightTime,
	}

	e.pos = layout.Start
	e.step = 0
	return e, nil
}

// computeShadowing fills the per-receiver NLOS masks and the consolidated
// blockage counts. A cell is NLOS to a receiver when the segment between
// their centers touches any obstacle cell rectangle.
func (e *UAVEnv) computeShadowing() {
	l := e.layout
	cw, ch := float64(l.CellWidth()), float64(l.CellHeight())

	e.nlos = make([][][]bool, len(l.Receivers))
	e.blockage = newIntGrid(l.Cols, l.Rows)

	for ue, pos := range l.Receivers {
		e.nlos[ue] = make([][]bool, l.Cols)
		x1, y1 := l.cellCenter(pos.Col, pos.Row)
		for col := 0; col < l.Cols; col++ {
			e.nlos[ue][col] = make([]bool, l.Rows)
			for row := 0; row < l.Rows; row++ {
				x2, y2 := l.cellCenter(float64(col), float64(row))
				for _, obs := range l.Obstacles {
					r := rect{
						minX: float64(obs.Col) * cw,
						minY: float64(obs.Row) * ch,
						maxX: float64(obs.Col)*cw + cw,
						maxY: float64(obs.Row)*ch + ch,
					}
					if segmentIntersectsRect(point{x1, y1}, point{x2, y2}, r) {
						e.nlos[ue][col][row] = true
						break
					}
				}
				if e.nlos[ue][col][row] {
					e.blockage[col][row]++
				}
			}
		}
	}
}

// computeRates fills the rate field from the channel model and the NLOS
// masks.
func (e *UAVEnv) computeRates() {
	l := e.layout
	e.rates = make([][][]float64, len(l.Receivers))
	for ue, pos := range l.Receivers {
		e.rates[ue] = make([][]float64, l.Cols)
		for col := 0; col < l.Cols; col++ {
			e.rates[ue][col] = make([]float64, l.Rows)
			for row := 0; row < l.Rows; row++ {
				d := l.distance(pos, PointF{Col: float64(col), Row: float64(row)}, true) *
					l.MeterPerPixel
				e.rates[ue][col][row] = e.comm.Rate(d, e.nlos[ue][col][row])
			}
		}
	}
}

// computeValidActions fills the per-cell action mask: border cells lose the
// moves leaving the grid, and each neighbor of an obstacle loses the move
// pointing into it.
func (e *UAVEnv) computeValidActions() {
	l := e.layout

	allowed := make([][][NumActions]bool, l.Cols)
	for col := range allowed {
		allowed[col] = make([][NumActions]bool, l.Rows)
		for row := range allowed[col] {
			allowed[col][row] = [NumActions]bool{true, true, true, true}
		}
	}
	for col := 0; col < l.Cols; col++ {
		allowed[col][0][ActionUp] = false
		allowed[col][l.Rows-1][ActionDown] = false
	}
	for row := 0; row < l.Rows; row++ {
		allowed[0][row][ActionLeft] = false
		allowed[l.Cols-1][row][ActionRight] = false
	}
	for _, obs := range l.Obstacles {
		allowed[obs.Col-1][obs.Row][ActionRight] = false
		allowed[obs.Col+1][obs.Row][ActionLeft] = false
		allowed[obs.Col][obs.Row-1][ActionDown] = false
		allowed[obs.Col][obs.Row+1][ActionUp] = false
	}

	e.valid = make([][][]int, l.Cols)
	for col := range e.valid {
		e.valid[col] = make([][]int, l.Rows)
		for row := range e.valid[col] {
			list := make([]int, 0, NumActions)
			for a := 0; a < NumActions; a++ {
				if allowed[col][row][a] {
					list = append(list, a)
				}
			}
			e.valid[col][row] = list
		}
	}
}

// Reset starts a new episode: the UAV returns to the start cell at step 0.
// Learning state lives in the agent and is unaffected.
func (e *UAVEnv) Reset() (State, Info) {
	e.pos = e.layout.Start
	e.step = 0
	return e.state(), e.info
}

// Step applies the action, advances one time step and computes the reward:
// the minimum achievable rate across all receivers at the new cell. Moves
// that would leave the grid, and actions outside the action space, are
// silently ignored; normal play never offers them because learners draw
// from ValidActions.
//
// Episode-ending checks run in strict order, exactly one may hold:
// terminated when the UAV is at the end cell at exactly the flight-time
// budget (no penalty); truncated with an early-return penalty of
// reward*(budget-step) when it reaches the end cell too soon; truncated
// with a 10x reward penalty when the budget runs out elsewhere.
func (e *UAVEnv) Step(action int) (State, float64, bool, bool, Info) {
	switch action {
	case ActionUp:
		if e.pos.Row > 0 {
			e.pos.Row--
		}
	case ActionDown:
		if e.pos.Row < e.layout.Rows-1 {
			e.pos.Row++
		}
	case ActionLeft:
		if e.pos.Col > 0 {
			e.pos.Col--
		}
	case ActionRight:
		if e.pos.Col < e.layout.Cols-1 {
			e.pos.Col++
		}
	}

	e.step++

	reward := math.Inf(1)
	for ue := range e.rates {
		if r := e.rates[ue][e.pos.Col][e.pos.Row]; r < reward {
			reward = r
		}
	}

	terminated := false
	truncated := false
	switch {
	case e.pos == e.layout.End && e.step == e.layout.FlightTime:
		terminated = true
	case e.pos == e.layout.End:
		truncated = true
		reward -= reward * float64(e.layout.FlightTime-e.step)
	case e.step == e.layout.FlightTime:
		truncated = true
		reward -= reward * 10
	}

	return e.state(), reward, terminated, truncated, e.info
}

func (e *UAVEnv) state() State {
	return State{
		Col:   e.pos.Col,
		Row:   e.pos.Row,
		Step:  e.step,
		valid: e.valid[e.pos.Col][e.pos.Row],
	}
}

// Layout returns the static layout the environment was built with.
func (e *UAVEnv) Layout() Layout { return e.layout }

// Rate returns the precomputed rate for a receiver at a cell, for
// diagnostics.
func (e *UAVEnv) Rate(receiver, col, row int) float64 {
	return e.rates[receiver][col][row]
}

// Blocked reports whether the sight line between a receiver and a cell is
// obstructed.
func (e *UAVEnv) Blocked(receiver, col, row int) bool {
	return e.nlos[receiver][col][row]
}

// Blockage returns how many receivers have their sight line to the cell
// obstructed.
func (e *UAVEnv) Blockage(col, row int) int {
	return e.blockage[col][row]
}

func newIntGrid(cols, rows int) [][]int {
	g := make([][]int, cols)
	for col := range g {
		g[col] = make([]int, rows)
	}
	return g
}
