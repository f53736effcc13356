package trainer

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"uavsim/pkg/rl"
	"uavsim/pkg/uavenv"
)

// epsilonReporter is implemented by learners that track an exploration
// probability.
type epsilonReporter interface {
	Epsilon() float64
}

// statesReporter is implemented by learners that own a value table.
type statesReporter interface {
	States() int
}

type namer interface {
	Name() string
}

// Trainer composes a learner and the environment and drives the episode
// loop. Learning is cumulative across the whole run: only the environment
// and the per-episode counters reset between episodes.
type Trainer struct {
	cfg     *Config
	env     uavenv.Environment
	learner rl.Learner

	name   string
	stats  EpisodeStats
	status *StatusServer
}

// New creates a trainer for the given environment and learner.
func New(cfg *Config, env uavenv.Environment, learner rl.Learner) *Trainer {
	name := cfg.Algorithm
	if n, ok := learner.(namer); ok {
		name = n.Name()
	}
	return &Trainer{cfg: cfg, env: env, learner: learner, name: name}
}

// Stats returns the episode outcomes recorded so far.
func (t *Trainer) Stats() *EpisodeStats { return &t.stats }

// Run executes the training loop until the episode budget is reached or ctx
// is canceled. Cancellation takes effect between steps, so the in-flight
// step always completes. On exit the learner is persisted (when configured)
// with the number of completed episodes, and the reward plot is written.
func (t *Trainer) Run(ctx context.Context) error {
	episodeID := 1
	if t.cfg.LoadData {
		klog.InfoS("Load data requested")
		round, err := t.learner.LoadData()
		if err != nil {
			return fmt.Errorf("load learner state: %w", err)
		}
		if round >= 0 {
			episodeID = round + 1
		}
	}

	if t.cfg.StatusPort > 0 {
		t.status = NewStatusServer(t.name)
		t.status.Start(t.cfg.StatusPort)
	}

	state, info := t.env.Reset()
	for _, line := range info.Description {
		klog.InfoS("Simulation info", "detail", line)
	}
	klog.InfoS("Running simulation", "algorithm", t.name, "flightTime", info.FlightTime)

	var (
		reward        *float64 // nil exactly once, before the very first step
		episodeReward float64
		completed     int
	)

	for {
		if ctx.Err() != nil {
			klog.InfoS("Interrupted, stopping training", "completedEpisodes", completed)
			break
		}
		if t.cfg.Episodes > 0 && completed >= t.cfg.Episodes {
			break
		}

		action := t.learner.GetAction(state, reward)
		next, r, terminated, truncated, _ := t.env.Step(action)
		state = next
		reward = &r
		episodeReward += r

		if !terminated && !truncated {
			continue
		}

		// One more call with the terminal state flushes the pending update.
		t.learner.GetAction(state, reward)

		t.stats.Record(episodeReward, state.Step, terminated)
		t.observe(episodeID, episodeReward, state.Step, terminated)

		if t.cfg.SampleInterval > 0 && (episodeID == 1 || episodeID%t.cfg.SampleInterval == 0) {
			reward = t.evaluate(episodeID, reward)
		}

		state, _ = t.env.Reset()
		episodeReward = 0
		episodeID++
		completed++
	}

	if t.cfg.SaveData {
		klog.InfoS("Save data requested")
		switch err := t.learner.SaveData(episodeID - 1); {
		case errors.Is(err, rl.ErrNotPersistent):
			klog.InfoS("Learner has no state to save", "algorithm", t.name)
		case err != nil:
			return fmt.Errorf("save learner state: %w", err)
		}
	}

	if t.cfg.ReportPath != "" && t.stats.Episodes() > 0 {
		if err := WriteRewardPlot(t.cfg.ReportPath, t.stats.Rewards); err != nil {
			klog.ErrorS(err, "Reward plot not written")
		} else {
			klog.InfoS("Reward plot written", "path", t.cfg.ReportPath)
		}
	}

	best, bestIdx := t.stats.Best()
	klog.InfoS("Training stopped",
		"episodes", t.stats.Episodes(),
		"returnedOnTime", t.stats.Returned(),
		"bestReward", fmt.Sprintf("%.2f", best),
		"bestEpisode", bestIdx+1,
	)
	return nil
}

// observe records one finished episode in metrics, status and the debug log.
func (t *Trainer) observe(episodeID int, reward float64, flightTime int, terminated bool) {
	recordEpisodeMetrics(t.name, reward, flightTime, terminated)

	epsilon := 0.0
	states := 0
	if e, ok := t.learner.(epsilonReporter); ok {
		epsilon = e.Epsilon()
	}
	if s, ok := t.learner.(statesReporter); ok {
		states = s.States()
	}
	recordLearnerMetrics(t.name, epsilon, states)

	if t.status != nil {
		t.status.RecordProgress(episodeID, reward, epsilon, states)
	}

	klog.V(2).InfoS("Episode finished",
		"episode", episodeID,
		"reward", fmt.Sprintf("%.2f", reward),
		"flightTime", flightTime,
		"returnedOnTime", terminated,
	)
}

// evaluate replays one episode with exploration switched off and logs the
// outcome. The exploration switch is restored afterwards; the value table
// keeps learning during the replay, just as in training. It returns the
// final reward so the caller's update chain continues seamlessly.
func (t *Trainer) evaluate(episodeID int, reward *float64) *float64 {
	original := t.learner.SetExploration(false)
	defer t.learner.SetExploration(original)

	state, _ := t.env.Reset()
	evalReward := 0.0
	for {
		action := t.learner.GetAction(state, reward)
		next, r, terminated, truncated, _ := t.env.Step(action)
		state = next
		reward = &r
		evalReward += r

		if terminated || truncated {
			recordEvalMetrics(t.name, evalReward)

			epsilon := "N/A"
			if e, ok := t.learner.(epsilonReporter); ok {
				epsilon = fmt.Sprintf("%.4f", e.Epsilon())
			}
			klog.InfoS("Evaluation episode",
				"episode", episodeID,
				"reward", fmt.Sprintf("%.2f", evalReward),
				"epsilon", epsilon,
				"flightTime", state.Step,
				"returnedOnTime", terminated,
			)
			return reward
		}
	}
}
