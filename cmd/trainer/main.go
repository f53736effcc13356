package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"uavsim/pkg/rl"
	"uavsim/pkg/trainer"
	"uavsim/pkg/uavenv"
)

func main() {
	// Flag defaults come from the environment-loaded config, so flags only
	// override what the user actually passed.
	cfg := trainer.LoadConfig()

	flag.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "learning algorithm: sarsa, qlearning or random")
	flag.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "episodes to run; 0 trains until interrupted")
	flag.IntVar(&cfg.SampleInterval, "sample-interval", cfg.SampleInterval, "episodes between greedy evaluation runs; 0 disables")
	flag.BoolVar(&cfg.LoadData, "load", cfg.LoadData, "resume from <algorithm>-load.json when present")
	flag.BoolVar(&cfg.SaveData, "save", cfg.SaveData, "write a snapshot when the run stops")
	flag.BoolVar(&cfg.Exploration, "exploration", cfg.Exploration, "enable epsilon-greedy exploration")
	flag.IntVar(&cfg.StatusPort, "status-port", cfg.StatusPort, "port for /metrics and /api/status; 0 disables")
	flag.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "path for the episode-reward plot; empty disables")
	klog.InitFlags(nil)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		klog.Fatalf("Invalid configuration: %v", err)
	}
	cfg.Log()

	env, err := uavenv.New(uavenv.DefaultLayout(), uavenv.DefaultComm())
	if err != nil {
		klog.Fatalf("Failed to build environment: %v", err)
	}

	var learner rl.Learner
	switch cfg.Algorithm {
	case trainer.AlgorithmSARSA:
		learner = rl.NewSARSA(uavenv.NumActions, cfg.Exploration)
	case trainer.AlgorithmQLearning:
		learner = rl.NewQLearning(uavenv.NumActions, cfg.Exploration)
	case trainer.AlgorithmRandom:
		learner = rl.NewRandomPolicy()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trainer.New(cfg, env, learner).Run(ctx); err != nil {
		klog.Fatalf("Training failed: %v", err)
	}
	klog.Flush()
}
