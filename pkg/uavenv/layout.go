// Package uavenv implements the grid-world environment for UAV trajectory
// training: a UAV flies over a cell grid serving ground receivers and must
// return to base within a fixed flight-time budget. The reward per step is
// the minimum achievable channel rate across all receivers at the UAV's
// cell (max-min fairness), with line-of-sight blocking by obstacles baked
// into a precomputed rate field.
//
// The setup reproduces the simulation environment of Bayerlein, De Kerret
// and Gesbert, "Trajectory Optimization for Autonomous Flying Base Station
// via Reinforcement Learning", IEEE SPAWC 2018.
package uavenv

import (
	"fmt"
	"math"
)

// Cell addresses one grid cell. Col grows rightwards, Row grows downwards,
// both starting at 0 in the top-left corner.
type Cell struct {
	Col int
	Row int
}

// PointF is a position in cell coordinates that may fall between cells,
// used for receiver placement on grid line crossings.
type PointF struct {
	Col float64
	Row float64
}

// Layout describes the static 2D map: grid dimensions, the pixel frame all
// geometry is computed in, the obstacle block, receiver positions and the
// UAV mission parameters. The rate field depends on the pixel frame, so the
// frame is part of the layout rather than a rendering concern.
type Layout struct {
	Rows int
	Cols int

	// Pixel frame. Width covers the map; Height includes Footer, which is
	// excluded from the cell area.
	Width  int
	Height int
	Footer int

	// Altitude is the UAV flying altitude in pixels; MeterPerPixel converts
	// pixel distances to meters for the channel model.
	Altitude      int
	MeterPerPixel float64

	// Obstacles lists the cells that block movement and line of sight. They
	// must be interior cells (not on the grid border).
	Obstacles []Cell

	// Receivers are the ground users to serve.
	Receivers []PointF

	// Start is where every episode begins; End is where the UAV must be
	// when FlightTime steps have elapsed. They are typically the same cell.
	Start      Cell
	End        Cell
	FlightTime int
}

// DefaultLayout returns the 15x15 SPAWC 2018 scenario: a 2x4 obstacle block,
// two receivers, and a UAV that starts from and returns to the bottom-left
// corner within 50 steps.
func DefaultLayout() Layout {
	l := Layout{
		Rows:          15,
		Cols:          15,
		Width:         800,
		Height:        880,
		Footer:        80,
		Altitude:      20,
		MeterPerPixel: 2,
		Receivers: []PointF{
			{Col: 4.5, Row: 2.5},
			{Col: 11.5, Row: 6.5},
		},
		Start:      Cell{Col: 0, Row: 14},
		End:        Cell{Col: 0, Row: 14},
		FlightTime: 50,
	}
	for col := 9; col < 11; col++ {
		for row := 8; row < 12; row++ {
			l.Obstacles = append(l.Obstacles, Cell{Col: col, Row: row})
		}
	}
	return l
}

// CellWidth returns the cell width in pixels.
func (l Layout) CellWidth() int { return l.Width / l.Cols }

// CellHeight returns the cell height in pixels.
func (l Layout) CellHeight() int { return (l.Height - l.Footer) / l.Rows }

// Validate checks that the layout is internally consistent. Obstacles must
// be interior cells: the action mask removes the moves pointing into an
// obstacle from all four neighbors, which do not exist at the border.
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", l.Cols, l.Rows)
	}
	if l.CellWidth() <= 0 || l.CellHeight() <= 0 {
		return fmt.Errorf("pixel frame %dx%d (footer %d) too small for %dx%d cells",
			l.Width, l.Height, l.Footer, l.Cols, l.Rows)
	}
	if l.FlightTime <= 0 {
		return fmt.Errorf("flight time must be positive, got %d", l.FlightTime)
	}
	if !l.inBounds(l.Start) {
		return fmt.Errorf("start cell %v outside %dx%d grid", l.Start, l.Cols, l.Rows)
	}
	if !l.inBounds(l.End) {
		return fmt.Errorf("end cell %v outside %dx%d grid", l.End, l.Cols, l.Rows)
	}
	if len(l.Receivers) == 0 {
		return fmt.Errorf("at least one receiver is required")
	}
	for _, ue := range l.Receivers {
		if ue.Col < 0 || ue.Col > float64(l.Cols) || ue.Row < 0 || ue.Row > float64(l.Rows) {
			return fmt.Errorf("receiver %v outside %dx%d grid", ue, l.Cols, l.Rows)
		}
	}
	for _, obs := range l.Obstacles {
		if obs.Col < 1 || obs.Col > l.Cols-2 || obs.Row < 1 || obs.Row > l.Rows-2 {
			return fmt.Errorf("obstacle %v must be an interior cell of the %dx%d grid",
				obs, l.Cols, l.Rows)
		}
		if obs == l.Start || obs == l.End {
			return fmt.Errorf("obstacle %v overlaps the start or end cell", obs)
		}
	}
	return nil
}

func (l Layout) inBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < l.Cols && c.Row >= 0 && c.Row < l.Rows
}

// cellCenter returns the pixel coordinates of the center of a (possibly
// fractional) cell position.
func (l Layout) cellCenter(col, row float64) (x, y float64) {
	x = col*float64(l.CellWidth()) + float64(l.CellWidth()/2)
	y = row*float64(l.CellHeight()) + float64(l.CellHeight()/2)
	return x, y
}

// distance returns the pixel distance between two cell positions. With
// groundToAir set, the UAV altitude contributes as the vertical leg.
func (l Layout) distance(a, b PointF, groundToAir bool) float64 {
	x1, y1 := l.cellCenter(a.Col, a.Row)
	x2, y2 := l.cellCenter(b.Col, b.Row)
	alt := 0.0
	if groundToAir {
		alt = float64(l.Altitude)
	}
	return math.Sqrt(alt*alt + (x1-x2)*(x1-x2) + (y1-y2)*(y1-y2))
}
