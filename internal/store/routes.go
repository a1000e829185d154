package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rmaia/floodwatch/internal/event"
	"github.com/rmaia/floodwatch/internal/models"
	"github.com/rmaia/floodwatch/internal/observability"
	"github.com/rmaia/floodwatch/internal/risk"
	"github.com/rmaia/floodwatch/internal/worker"
)

// ErrRouteLimit is returned by Add when the route list is already at
// the configured maximum. The rejection leaves the store untouched.
var ErrRouteLimit = errors.New("route limit reached")

const lastUpdateWaiting = "waiting for risk check"

// Publisher receives route events as lookups resolve. The event bus
// implements it; tests substitute a capture sink.
type Publisher interface {
	Publish(ev event.RouteEvent)
}

// RouteStore owns the route list. All mutations go through it; risk
// lookups run on the worker pool and re-enter through applyResult /
// applyFailure, which re-check that the route still exists and that no
// newer lookup superseded them.
type RouteStore struct {
	mu     sync.Mutex
	routes []models.Route
	seq    map[string]uint64

	maxRoutes int
	lookup    risk.Lookup
	pool      *worker.Pool
	events    Publisher
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

func NewRouteStore(maxRoutes int, lookup risk.Lookup, pool *worker.Pool, events Publisher, clk clockwork.Clock, metrics *observability.Metrics) *RouteStore {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &RouteStore{
		seq:       make(map[string]uint64),
		maxRoutes: maxRoutes,
		lookup:    lookup,
		pool:      pool,
		events:    events,
		clock:     clk,
		metrics:   metrics,
	}
}

// List returns the routes in creation order.
func (s *RouteStore) List() []models.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// Add inserts a pending placeholder route and schedules its risk
// lookup. The placeholder is visible to List before the lookup
// resolves. Returns ErrRouteLimit at capacity, with no side effect.
func (s *RouteStore) Add(ctx context.Context, name, startAddress, endAddress string) (models.Route, error) {
	s.mu.Lock()
	if len(s.routes) >= s.maxRoutes {
		s.mu.Unlock()
		s.metrics.LimitRejected.Inc()
		return models.Route{}, ErrRouteLimit
	}

	r := models.Route{
		ID:           uuid.NewString(),
		Name:         name,
		StartAddress: startAddress,
		EndAddress:   endAddress,
		Status:       models.RouteStatusPending,
		LastUpdate:   lastUpdateWaiting,
		CreatedAt:    s.clock.Now(),
	}
	s.routes = append(s.routes, r)
	seq := s.bumpSeqLocked(r.ID)
	count := len(s.routes)
	s.mu.Unlock()

	s.metrics.ActiveRoutes.Set(float64(count))
	s.scheduleLookup(r.ID, seq, startAddress, endAddress)
	return r, nil
}

// Partial carries the editable route fields; nil means "leave as is".
type Partial struct {
	Name         *string
	StartAddress *string
	EndAddress   *string
}

// Update merges the partial into the route. If neither address changed
// it is a pure field merge; otherwise the route re-enters the pending
// lookup cycle under its existing id. Unknown ids are silently ignored.
func (s *RouteStore) Update(ctx context.Context, id string, p Partial) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	r := &s.routes[idx]
	addressChanged := (p.StartAddress != nil && *p.StartAddress != r.StartAddress) ||
		(p.EndAddress != nil && *p.EndAddress != r.EndAddress)

	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.StartAddress != nil {
		r.StartAddress = *p.StartAddress
	}
	if p.EndAddress != nil {
		r.EndAddress = *p.EndAddress
	}

	if !addressChanged {
		s.mu.Unlock()
		return
	}

	r.Status = models.RouteStatusPending
	r.RiskLevel = 0
	r.LastUpdate = lastUpdateWaiting
	seq := s.bumpSeqLocked(id)
	startAddress, endAddress := r.StartAddress, r.EndAddress
	s.mu.Unlock()

	s.scheduleLookup(id, seq, startAddress, endAddress)
}

// Delete removes the route if present. An in-flight lookup for the id
// is not cancelled; its late resolution is discarded on apply.
func (s *RouteStore) Delete(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.routes = append(s.routes[:idx], s.routes[idx+1:]...)
	delete(s.seq, id)
	count := len(s.routes)
	s.mu.Unlock()

	s.metrics.ActiveRoutes.Set(float64(count))
}

func (s *RouteStore) scheduleLookup(id string, seq uint64, startAddress, endAddress string) {
	s.pool.Submit(func(ctx context.Context) {
		res, err := s.lookup.RiskForRoute(ctx, startAddress, endAddress)
		if err != nil {
			s.applyFailure(id, seq, err)
			return
		}
		s.applyResult(id, seq, int(math.Round(res.Probability)))
	})
}

func (s *RouteStore) applyResult(id string, seq uint64, riskLevel int) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || s.seq[id] != seq {
		s.mu.Unlock()
		s.metrics.RiskLookups.WithLabelValues("stale").Inc()
		slog.Debug("discarding stale lookup result", "route_id", id)
		return
	}

	r := &s.routes[idx]
	r.Status = risk.StatusFromRisk(riskLevel)
	r.RiskLevel = riskLevel
	r.LastUpdate = models.FormatTimestamp(s.clock.Now())

	ev := event.RouteEvent{
		Kind:      event.KindRiskEvaluated,
		RouteID:   r.ID,
		RouteName: r.Name,
		RiskLevel: riskLevel,
		Status:    r.Status,
	}
	s.mu.Unlock()

	s.metrics.RiskLookups.WithLabelValues("success").Inc()
	slog.Info("risk evaluated", "route_id", id, "risk_level", riskLevel, "status", ev.Status)

	if s.events != nil {
		s.events.Publish(ev)
	}
}

func (s *RouteStore) applyFailure(id string, seq uint64, cause error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || s.seq[id] != seq {
		s.mu.Unlock()
		s.metrics.RiskLookups.WithLabelValues("stale").Inc()
		slog.Debug("discarding stale lookup failure", "route_id", id)
		return
	}

	r := &s.routes[idx]
	r.Status = models.RouteStatusFailed
	r.RiskLevel = 0
	r.LastUpdate = fmt.Sprintf("check failed at %s", models.FormatTimestamp(s.clock.Now()))

	ev := event.RouteEvent{
		Kind:      event.KindLookupFailed,
		RouteID:   r.ID,
		RouteName: r.Name,
		Reason:    cause.Error(),
	}
	s.mu.Unlock()

	s.metrics.RiskLookups.WithLabelValues("error").Inc()
	slog.Error("risk lookup failed", "route_id", id, "error", cause)

	if s.events != nil {
		s.events.Publish(ev)
	}
}

// bumpSeqLocked advances the per-route lookup sequence. Only the
// resolution carrying the latest sequence for an id may mutate it.
func (s *RouteStore) bumpSeqLocked(id string) uint64 {
	s.seq[id]++
	return s.seq[id]
}

func (s *RouteStore) indexLocked(id string) int {
	for i := range s.routes {
		if s.routes[i].ID == id {
			return i
		}
	}
	return -1
}
