package trainer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"uavsim/pkg/rl"
	"uavsim/pkg/uavenv"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Episodes = 3
	cfg.SampleInterval = 0
	cfg.LoadData = false
	cfg.SaveData = false
	cfg.StatusPort = 0
	return cfg
}

func newTestEnv(t *testing.T) *uavenv.UAVEnv {
	t.Helper()
	env, err := uavenv.New(uavenv.DefaultLayout(), uavenv.DefaultComm())
	if err != nil {
		t.Fatalf("New environment failed: %v", err)
	}
	return env
}

func TestTrainerRunsEpisodeBudget(t *testing.T) {
	cfg := testConfig()
	learner := rl.NewSARSA(uavenv.NumActions, true)
	tr := New(cfg, newTestEnv(t), learner)

	if err := tr.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	stats := tr.Stats()
	if stats.Episodes() != 3 {
		t.Fatalf("Expected 3 episodes, got %d", stats.Episodes())
	}
	for i, ft := range stats.FlightTimes {
		if ft < 1 || ft > 50 {
			t.Errorf("Episode %d: flight time %d outside [1,50]", i, ft)
		}
	}
	if learner.States() == 0 {
		t.Error("Expected the learner to have visited states")
	}
}

func TestTrainerUsesLearnerName(t *testing.T) {
	tr := New(testConfig(), newTestEnv(t), rl.NewRandomPolicy())
	if tr.name != "Random" {
		t.Errorf("Expected trainer name Random, got %s", tr.name)
	}
}

func TestTrainerEvaluationRestoresExploration(t *testing.T) {
	cfg := testConfig()
	cfg.Episodes = 2
	cfg.SampleInterval = 1
	learner := rl.NewSARSA(uavenv.NumActions, true)
	tr := New(cfg, newTestEnv(t), learner)

	if err := tr.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if prev := learner.SetExploration(true); prev != true {
		t.Error("Expected exploration restored after evaluation replays")
	}
}

func TestTrainerStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Episodes = 0 // would run forever without the cancellation
	tr := New(cfg, newTestEnv(t), rl.NewSARSA(uavenv.NumActions, true))

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tr.Stats().Episodes() != 0 {
		t.Errorf("Expected no episodes, got %d", tr.Stats().Episodes())
	}
}

func TestTrainerRandomBaseline(t *testing.T) {
	cfg := testConfig()
	cfg.Episodes = 2
	cfg.SaveData = true // nothing to persist, must not fail the run
	tr := New(cfg, newTestEnv(t), rl.NewRandomPolicy())

	if err := tr.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tr.Stats().Episodes() != 2 {
		t.Errorf("Expected 2 episodes, got %d", tr.Stats().Episodes())
	}
}

func TestEpisodeStats(t *testing.T) {
	var stats EpisodeStats

	if best, idx := stats.Best(); best != 0 || idx != -1 {
		t.Errorf("Expected (0, -1) on empty stats, got (%f, %d)", best, idx)
	}

	stats.Record(10.5, 50, true)
	stats.Record(-3.0, 12, false)
	stats.Record(42.0, 50, true)

	if stats.Episodes() != 3 {
		t.Errorf("Expected 3 episodes, got %d", stats.Episodes())
	}
	if stats.Returned() != 2 {
		t.Errorf("Expected 2 on-time returns, got %d", stats.Returned())
	}
	if best, idx := stats.Best(); best != 42.0 || idx != 2 {
		t.Errorf("Expected best (42, 2), got (%f, %d)", best, idx)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config must validate, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.Algorithm = "dqn"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for an unknown algorithm")
	}

	cfg = DefaultConfig()
	cfg.Episodes = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for negative episodes")
	}

	cfg = DefaultConfig()
	cfg.StatusPort = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for an out-of-range port")
	}
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("UAVSIM_ALGORITHM", "qlearning")
	t.Setenv("UAVSIM_EPISODES", "250")
	t.Setenv("UAVSIM_SAVE_DATA", "false")
	t.Setenv("UAVSIM_STATUS_PORT", "not-a-number")

	cfg := LoadConfig()
	if cfg.Algorithm != AlgorithmQLearning {
		t.Errorf("Expected algorithm qlearning, got %s", cfg.Algorithm)
	}
	if cfg.Episodes != 250 {
		t.Errorf("Expected 250 episodes, got %d", cfg.Episodes)
	}
	if cfg.SaveData {
		t.Error("Expected save data disabled")
	}
	if cfg.StatusPort != 8080 {
		t.Errorf("Expected unparsable port to keep the default, got %d", cfg.StatusPort)
	}
}

func TestStatusServer(t *testing.T) {
	s := NewStatusServer("SARSA")
	s.RecordProgress(42, 17.5, 0.31, 900)

	status := s.GetStatus()
	if !status.Healthy {
		t.Error("Expected healthy right after progress")
	}
	if status.Episode != 42 || status.LastReward != 17.5 || status.StatesVisited != 900 {
		t.Errorf("Unexpected status %+v", status)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /healthz, got %d", rec.Code)
	}
}

func BenchmarkTrainerEpisode(b *testing.B) {
	cfg := testConfig()
	cfg.Episodes = 1
	env, err := uavenv.New(uavenv.DefaultLayout(), uavenv.DefaultComm())
	if err != nil {
		b.Fatalf("New environment failed: %v", err)
	}
	learner := rl.NewSARSA(uavenv.NumActions, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New(cfg, env, learner)
		if err := tr.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}
