package trainer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

// TrainingStatus is the JSON document served on /api/status.
type TrainingStatus struct {
	Healthy       bool      `json:"healthy"`
	Algorithm     string    `json:"algorithm"`
	Episode       int       `json:"episode"`
	LastReward    float64   `json:"lastReward"`
	Epsilon       float64   `json:"epsilon"`
	StatesVisited int       `json:"statesVisited"`
	StartTime     time.Time `json:"startTime"`
	Uptime        string    `json:"uptime"`
}

// StatusServer exposes the trainer's progress over HTTP. The trainer itself
// is single-goroutine; the mutex only guards against concurrent HTTP reads.
type StatusServer struct {
	algorithm string
	startTime time.Time

	mu            sync.RWMutex
	episode       int
	lastReward    float64
	epsilon       float64
	statesVisited int
	lastProgress  time.Time
}

// NewStatusServer creates a status server for the given algorithm label.
func NewStatusServer(algorithm string) *StatusServer {
	now := time.Now()
	return &StatusServer{
		algorithm:    algorithm,
		startTime:    now,
		lastProgress: now,
	}
}

// RecordProgress updates the served counters after a finished episode.
func (s *StatusServer) RecordProgress(episode int, reward, epsilon float64, states int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episode = episode
	s.lastReward = reward
	s.epsilon = epsilon
	s.statesVisited = states
	s.lastProgress = time.Now()
}

// GetStatus returns the current status. The trainer counts as healthy while
// episodes keep completing; a long stall marks it unhealthy.
func (s *StatusServer) GetStatus() TrainingStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	healthy := time.Since(s.lastProgress) < 60*time.Second
	return TrainingStatus{
		Healthy:       healthy,
		Algorithm:     s.algorithm,
		Episode:       s.episode,
		LastReward:    s.lastReward,
		Epsilon:       s.epsilon,
		StatesVisited: s.statesVisited,
		StartTime:     s.startTime,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
	}
}

// ServeHTTP handles health check requests.
func (s *StatusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := s.GetStatus()

	w.Header().Set("Content-Type", "application/json")
	if status.Healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Start serves /healthz, /metrics and /api/status on the given port in a
// background goroutine.
func (s *StatusServer) Start(port int) {
	mux := http.NewServeMux()
	mux.Handle("/healthz", s)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(s.GetStatus())
	})

	addr := fmt.Sprintf(":%d", port)
	klog.InfoS("Starting status server", "address", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			klog.ErrorS(err, "Status server failed")
		}
	}()
}
