package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rmaia/floodwatch/internal/models"
	"github.com/rmaia/floodwatch/internal/notify"
	"github.com/rmaia/floodwatch/internal/observability"
)

// AlertStore owns the alert feed and the single "current" alert shown
// as a transient toast. Candidate alerts pass through the notification
// gates before they are recorded.
type AlertStore struct {
	mu      sync.Mutex
	alerts  []models.Alert
	current *models.Alert

	// gen invalidates toast timers: a timer only dismisses if the
	// generation it was armed for is still the live one.
	gen   uint64
	timer clockwork.Timer

	settings *Settings
	haptics  notify.Haptics
	toastTTL time.Duration
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

func NewAlertStore(settings *Settings, haptics notify.Haptics, toastTTL time.Duration, clk clockwork.Clock, metrics *observability.Metrics) *AlertStore {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if haptics == nil {
		haptics = notify.Noop{}
	}
	return &AlertStore{
		settings: settings,
		haptics:  haptics,
		toastTTL: toastTTL,
		clock:    clk,
		metrics:  metrics,
	}
}

// List returns the alerts newest-first.
func (s *AlertStore) List() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Add records a new alert unless notification settings gate it out.
// The accepted alert is prepended to the feed, promoted to current
// (replacing any prior current alert), and its toast timer armed. The
// returned bool reports whether the alert was accepted.
func (s *AlertStore) Add(routeID, routeName string, typ models.AlertType, message string, severity models.AlertSeverity) (models.Alert, bool) {
	snap := s.settings.Snapshot()
	if !snap.NotificationsEnabled {
		s.metrics.AlertsGated.Inc()
		return models.Alert{}, false
	}
	if snap.HighRiskOnly && severity != models.AlertSeverityHigh {
		s.metrics.AlertsGated.Inc()
		return models.Alert{}, false
	}

	now := s.clock.Now()
	a := models.Alert{
		ID:        uuid.NewString(),
		RouteID:   routeID,
		RouteName: routeName,
		Type:      typ,
		Message:   message,
		Severity:  severity,
		Timestamp: models.FormatTimestamp(now),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.alerts = append([]models.Alert{a}, s.alerts...)
	s.setCurrentLocked(a)
	s.mu.Unlock()

	s.metrics.AlertsCreated.WithLabelValues(string(severity)).Inc()

	if snap.VibrationEnabled {
		s.haptics.Trigger(context.Background())
	}
	return a, true
}

// Current returns the alert pending toast display, if any.
func (s *AlertStore) Current() (models.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Alert{}, false
	}
	return *s.current, true
}

// DismissCurrent clears the toast without touching the alert feed.
func (s *AlertStore) DismissCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCurrentLocked()
}

// MarkRead flips the read flag on the alert. Unknown ids are ignored.
func (s *AlertStore) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].IsRead = true
			return
		}
	}
}

// Remove deletes the alert from the feed. Unknown ids are ignored.
func (s *AlertStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return
		}
	}
}

func (s *AlertStore) setCurrentLocked(a models.Alert) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = &a
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.toastTTL, func() {
		s.expireToast(gen)
	})
}

func (s *AlertStore) clearCurrentLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = nil
	s.gen++
}

// expireToast is the timer callback. The generation check keeps a
// stale timer from dismissing an alert that replaced the one it was
// armed for.
func (s *AlertStore) expireToast(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.current == nil {
		return
	}
	s.current = nil
	s.timer = nil
}
