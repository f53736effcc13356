// Package trainer drives repeated episode/update cycles of a learner against
// the UAV grid environment, with periodic greedy evaluation, cumulative
// snapshot persistence and training metrics.
package trainer

import (
	"fmt"
	"os"
	"strconv"

	"k8s.io/klog/v2"
)

// Algorithm names accepted by Config.Algorithm.
const (
	AlgorithmSARSA     = "sarsa"
	AlgorithmQLearning = "qlearning"
	AlgorithmRandom    = "random"
)

// Config holds all configurable parameters for a training run. Values can be
// overridden through environment variables and, in cmd/trainer, CLI flags.
type Config struct {
	// Algorithm selects the learner: "sarsa", "qlearning" or "random".
	Algorithm string

	// Episodes is how many episodes to run this session; 0 means train
	// until the context is canceled.
	Episodes int

	// SampleInterval is how many episodes between greedy evaluation
	// replays; 0 disables evaluation.
	SampleInterval int

	// LoadData makes the learner resume from "<name>-load.json" if present.
	LoadData bool

	// SaveData makes the learner write a fresh snapshot when the run stops,
	// including on interruption.
	SaveData bool

	// Exploration toggles epsilon-greedy exploration during training.
	Exploration bool

	// StatusPort serves /metrics, /api/status and /healthz; 0 disables the
	// server.
	StatusPort int

	// ReportPath, when non-empty, is where the episode-reward plot PNG is
	// written at the end of the run.
	ReportPath string
}

// DefaultConfig returns a configuration with default values: SARSA training
// with exploration, persistence on, evaluation every 10000 episodes.
func DefaultConfig() *Config {
	return &Config{
		Algorithm:      AlgorithmSARSA,
		Episodes:       0,
		SampleInterval: 10000,
		LoadData:       true,
		SaveData:       true,
		Exploration:    true,
		StatusPort:     8080,
		ReportPath:     "",
	}
}

// LoadConfig returns the defaults overridden by environment variables.
// Callers apply CLI flags on top, then Validate and Log.
func LoadConfig() *Config {
	config := DefaultConfig()
	config.loadFromEnvironment()
	return config
}

// loadFromEnvironment overrides fields from UAVSIM_* environment variables.
func (c *Config) loadFromEnvironment() {
	c.Algorithm = envString("UAVSIM_ALGORITHM", c.Algorithm)
	c.Episodes = envInt("UAVSIM_EPISODES", c.Episodes)
	c.SampleInterval = envInt("UAVSIM_SAMPLE_INTERVAL", c.SampleInterval)
	c.LoadData = envBool("UAVSIM_LOAD_DATA", c.LoadData)
	c.SaveData = envBool("UAVSIM_SAVE_DATA", c.SaveData)
	c.Exploration = envBool("UAVSIM_EXPLORATION", c.Exploration)
	c.StatusPort = envInt("UAVSIM_STATUS_PORT", c.StatusPort)
	c.ReportPath = envString("UAVSIM_REPORT", c.ReportPath)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmSARSA, AlgorithmQLearning, AlgorithmRandom:
	default:
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if c.Episodes < 0 {
		return fmt.Errorf("episodes must be >= 0, got %d", c.Episodes)
	}
	if c.SampleInterval < 0 {
		return fmt.Errorf("sample interval must be >= 0, got %d", c.SampleInterval)
	}
	if c.StatusPort < 0 || c.StatusPort > 65535 {
		return fmt.Errorf("status port must be in [0,65535], got %d", c.StatusPort)
	}
	return nil
}

// Log prints the effective configuration.
func (c *Config) Log() {
	klog.InfoS("Trainer configuration",
		"algorithm", c.Algorithm,
		"episodes", c.Episodes,
		"sampleInterval", c.SampleInterval,
		"loadData", c.LoadData,
		"saveData", c.SaveData,
		"exploration", c.Exploration,
		"statusPort", c.StatusPort,
		"reportPath", c.ReportPath,
	)
}

func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		klog.Warningf("Invalid %s=%q, keeping %d: %v", key, val, fallback, err)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		klog.Warningf("Invalid %s=%q, keeping %t: %v", key, val, fallback, err)
		return fallback
	}
	return b
}
