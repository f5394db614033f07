// Package daemon provides the long-running background budget monitor
// service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
	"pacewatch/internal/pipeline"
)

// Runner executes one budget check.
type Runner interface {
	Run(ctx context.Context) (*pipeline.CheckResult, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact budget state for status/event payloads.
type Snapshot struct {
	At              time.Time          `json:"at"`
	Month           model.MonthKey     `json:"month"`
	Total           decimal.Decimal    `json:"total"`
	Target          decimal.Decimal    `json:"target"`
	Remaining       decimal.Decimal    `json:"remaining"`
	PercentUsed     decimal.Decimal    `json:"percent_used"`
	Status          model.BudgetStatus `json:"status"`
	Pace            model.PaceClass    `json:"pace"`
	ExpectedSpend   decimal.Decimal    `json:"expected_spend"`
	NewTransactions int                `json:"new_transactions"`
	ShouldAlert     bool               `json:"should_alert"`
	Reasons         []string           `json:"reasons,omitempty"`
}

// Delta captures snapshot deltas between checks.
type Delta struct {
	Spend           decimal.Decimal `json:"spend"`
	NewTransactions int             `json:"new_transactions"`
}

func (d Delta) isZero() bool {
	return d.Spend.IsZero() && d.NewTransactions == 0
}

// Event is emitted whenever the budget snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	LastCheckAt      time.Time `json:"last_check_at"`
	CheckIntervalSec int       `json:"check_interval_sec"`
	CheckCount       int64     `json:"check_count"`
	DataDir          string    `json:"data_dir"`
	Summary          Snapshot  `json:"summary"`
	LastError        string    `json:"last_error,omitempty"`
	EventCount       int       `json:"event_count"`
	SubscriberCount  int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	runner Runner

	mu          sync.RWMutex
	startedAt   time.Time
	lastCheckAt time.Time
	checkCount  int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config and check
// runner.
func New(cfg Config, runner Runner) *Service {
	if cfg.Interval < time.Minute {
		cfg.Interval = time.Hour
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		runner:    runner,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and periodic checks until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.checkOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.checkOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) checkOnce(ctx context.Context) {
	result, err := s.runner.Run(ctx)
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastCheckAt = now
		s.checkCount++
		s.mu.Unlock()
		log.Printf("pacewatch daemon check error: %v", err)
		return
	}

	snap := snapshotFromResult(result, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastCheckAt = now
	s.checkCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() || snap.ShouldAlert {
			s.nextEventID++
			typ := "spend_delta"
			if snap.ShouldAlert {
				typ = "alert"
			}
			ev = Event{
				ID:        s.nextEventID,
				Type:      typ,
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotFromResult(result *pipeline.CheckResult, at time.Time) Snapshot {
	summary := result.Summary
	return Snapshot{
		At:              at,
		Month:           summary.Month,
		Total:           summary.Spending.Total,
		Target:          summary.Spending.Target,
		Remaining:       summary.Spending.Remaining,
		PercentUsed:     summary.Spending.PercentUsed,
		Status:          summary.Status,
		Pace:            summary.Pace.Classification,
		ExpectedSpend:   summary.Pace.Expected,
		NewTransactions: result.Decision.NewTransactions,
		ShouldAlert:     result.Decision.ShouldAlert,
		Reasons:         result.Decision.Reasons,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	// A month rollover resets the running total; treat the new total
	// as the whole delta.
	if prev.Month != curr.Month {
		return Delta{Spend: curr.Total, NewTransactions: curr.NewTransactions}
	}
	return Delta{
		Spend:           curr.Total.Sub(prev.Total),
		NewTransactions: curr.NewTransactions,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:        s.startedAt,
		LastCheckAt:      s.lastCheckAt,
		CheckIntervalSec: int(s.cfg.Interval.Seconds()),
		CheckCount:       s.checkCount,
		DataDir:          s.cfg.DataDir,
		Summary:          s.snapshot,
		LastError:        s.lastError,
		EventCount:       len(s.events),
		SubscriberCount:  len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
