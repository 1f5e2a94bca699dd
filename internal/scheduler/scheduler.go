package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-mcp/internal/metrics"
)

// Reporter runs the full weather pipeline for a location.
type Reporter interface {
	Report(ctx context.Context, location string) (string, error)
}

// ProbeStatus is the outcome of the most recent upstream probe.
type ProbeStatus struct {
	LastRun time.Time `json:"lastRun"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
}

// Scheduler periodically runs the pipeline for a probe location so /health
// can report whether both upstreams are reachable. Results are not kept.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	circuit   *gobreaker.CircuitBreaker
	reporter  Reporter
	location  string
	interval  time.Duration

	mu     sync.RWMutex
	status ProbeStatus
}

// New creates a new Scheduler.
func New(location string, interval time.Duration, reporter Reporter) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		circuit:   newCircuitBreaker("upstream-probe", interval),
		reporter:  reporter,
		location:  location,
		interval:  interval,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || s.location == "" {
		log.Println("scheduler: upstream probe disabled")
		return nil
	}

	job, err := s.scheduler.Every(s.interval).Do(s.Probe)
	if err != nil {
		return err
	}
	s.job = job

	s.scheduler.StartAsync()
	return nil
}

// Probe runs the pipeline once and records the outcome. After repeated
// failures the circuit opens and probes are skipped until it half-opens.
func (s *Scheduler) Probe() {
	log.Printf("scheduler: probing upstreams with %q", s.location)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status := ProbeStatus{LastRun: time.Now().UTC(), OK: true}
	_, err := s.circuit.Execute(func() (interface{}, error) {
		return s.reporter.Report(ctx, s.location)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = errCircuitOpen
	}
	if err != nil {
		log.Printf("scheduler: probe failed: %v", err)
		status.OK = false
		status.Error = err.Error()
		metrics.ProbeSuccess.Set(0)
	} else {
		metrics.ProbeSuccess.Set(1)
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// NextRun returns when the probe job runs next; zero when it is not scheduled.
func (s *Scheduler) NextRun() time.Time {
	if s.job == nil {
		return time.Time{}
	}
	return s.job.NextRun()
}

// Status returns the last probe outcome; LastRun is zero before the first probe.
func (s *Scheduler) Status() ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

var errCircuitOpen = errors.New("probe skipped: circuit breaker open")

// newCircuitBreaker trips after more than five consecutive failures and
// half-opens again after one interval.
func newCircuitBreaker(name string, interval time.Duration) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     interval,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("scheduler: circuit %s changed from %s to %s", name, from, to)
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}
