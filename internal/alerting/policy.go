package alerting

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rmaia/floodwatch/internal/event"
	"github.com/rmaia/floodwatch/internal/models"
	"github.com/rmaia/floodwatch/internal/repository"
	"github.com/rmaia/floodwatch/internal/risk"
)

const lookupFailedMessage = "Could not retrieve flood risk for this route. Check the route and try again."

// Sink records derived alerts. The alert store implements it; the
// returned bool reports whether the alert passed the notification
// gates.
type Sink interface {
	Add(routeID, routeName string, typ models.AlertType, message string, severity models.AlertSeverity) (models.Alert, bool)
}

// Policy turns route events into alerts: a non-safe evaluation becomes
// a flood warning, a failed lookup becomes a high-severity unknown
// alert. Safe evaluations produce nothing. Accepted alerts are written
// through to the archive when one is configured.
type Policy struct {
	bus     *event.Bus
	sink    Sink
	archive repository.Archive
	wg      sync.WaitGroup
}

func NewPolicy(bus *event.Bus, sink Sink, archive repository.Archive) *Policy {
	return &Policy{
		bus:     bus,
		sink:    sink,
		archive: archive,
	}
}

func (p *Policy) Start(ctx context.Context) {
	id, ch := p.bus.Subscribe()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.bus.Unsubscribe(id)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				p.handle(ctx, ev)
			}
		}
	}()
}

func (p *Policy) Stop() {
	p.wg.Wait()
	slog.Info("alert policy stopped")
}

func (p *Policy) handle(ctx context.Context, ev event.RouteEvent) {
	var (
		a  models.Alert
		ok bool
	)

	switch ev.Kind {
	case event.KindRiskEvaluated:
		if ev.Status == models.RouteStatusSafe {
			return
		}
		a, ok = p.sink.Add(ev.RouteID, ev.RouteName, models.AlertTypeFloodWarning,
			risk.MessageFromRisk(ev.RiskLevel), risk.SeverityFromRisk(ev.RiskLevel))
	case event.KindLookupFailed:
		a, ok = p.sink.Add(ev.RouteID, ev.RouteName, models.AlertTypeUnknown,
			lookupFailedMessage, models.AlertSeverityHigh)
	default:
		return
	}

	if !ok {
		return
	}

	slog.Info("alert recorded", "route_id", ev.RouteID, "type", a.Type, "severity", a.Severity)

	if p.archive != nil {
		if err := p.archive.Save(ctx, a); err != nil {
			slog.Error("error archiving alert", "id", a.ID, "error", err)
		}
	}
}
