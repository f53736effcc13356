package rl

// QTable maps canonical state keys to per-action value vectors. Rows are
// created lazily: reading an unseen state yields an all-zero row instead of
// an error. The table only ever grows; the state space includes the step
// counter, so memory scales with the flight-time budget.
type QTable struct {
	numActions int
	rows       map[string][]float64
}

// NewQTable creates an empty table whose rows have numActions entries.
func NewQTable(numActions int) *QTable {
	return &QTable{
		numActions: numActions,
		rows:       make(map[string][]float64),
	}
}

// Get returns the value vector for key, creating a zero row on first access.
func (q *QTable) Get(key string) []float64 {
	row, ok := q.rows[key]
	if !ok {
		row = make([]float64, q.numActions)
		q.rows[key] = row
	}
	return row
}

// Set writes a single entry.
func (q *QTable) Set(key string, action int, value float64) {
	q.Get(key)[action] = value
}

// Len returns the number of states seen so far.
func (q *QTable) Len() int {
	return len(q.rows)
}

// NumActions returns the configured row width.
func (q *QTable) NumActions() int {
	return q.numActions
}
