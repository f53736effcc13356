package trainer

// EpisodeStats accumulates per-episode outcomes across a run. It is the
// in-memory record behind the final summary log and the reward plot.
type EpisodeStats struct {
	Rewards     []float64
	FlightTimes []int
	Terminated  []bool
}

// Record appends one finished episode.
func (s *EpisodeStats) Record(reward float64, flightTime int, terminated bool) {
	s.Rewards = append(s.Rewards, reward)
	s.FlightTimes = append(s.FlightTimes, flightTime)
	s.Terminated = append(s.Terminated, terminated)
}

// Episodes returns how many episodes were recorded.
func (s *EpisodeStats) Episodes() int {
	return len(s.Rewards)
}

// Returned returns how many episodes ended with the UAV back exactly on
// time.
func (s *EpisodeStats) Returned() int {
	n := 0
	for _, t := range s.Terminated {
		if t {
			n++
		}
	}
	return n
}

// Best returns the highest episode reward and its episode index, or
// (0, -1) when nothing was recorded.
func (s *EpisodeStats) Best() (float64, int) {
	if len(s.Rewards) == 0 {
		return 0, -1
	}
	best, idx := s.Rewards[0], 0
	for i, r := range s.Rewards[1:] {
		if r > best {
			best, idx = r, i+1
		}
	}
	return best, idx
}
