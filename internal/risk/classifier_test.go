package risk

import (
	"testing"

	"github.com/rmaia/floodwatch/internal/models"
)

func TestClassifier_Bands(t *testing.T) {
	tests := []struct {
		risk     int
		status   models.RouteStatus
		severity models.AlertSeverity
	}{
		{0, models.RouteStatusSafe, models.AlertSeverityLow},
		{15, models.RouteStatusSafe, models.AlertSeverityLow},
		{29, models.RouteStatusSafe, models.AlertSeverityLow},
		{30, models.RouteStatusWarning, models.AlertSeverityMedium},
		{50, models.RouteStatusWarning, models.AlertSeverityMedium},
		{69, models.RouteStatusWarning, models.AlertSeverityMedium},
		{70, models.RouteStatusDanger, models.AlertSeverityHigh},
		{85, models.RouteStatusDanger, models.AlertSeverityHigh},
		{100, models.RouteStatusDanger, models.AlertSeverityHigh},
	}

	for _, tt := range tests {
		if got := StatusFromRisk(tt.risk); got != tt.status {
			t.Errorf("StatusFromRisk(%d) = %s, want %s", tt.risk, got, tt.status)
		}
		if got := SeverityFromRisk(tt.risk); got != tt.severity {
			t.Errorf("SeverityFromRisk(%d) = %s, want %s", tt.risk, got, tt.severity)
		}
	}
}

func TestClassifier_StatusSeverityLockStep(t *testing.T) {
	pairs := map[models.RouteStatus]models.AlertSeverity{
		models.RouteStatusSafe:    models.AlertSeverityLow,
		models.RouteStatusWarning: models.AlertSeverityMedium,
		models.RouteStatusDanger:  models.AlertSeverityHigh,
	}

	for r := 0; r <= 100; r++ {
		want, ok := pairs[StatusFromRisk(r)]
		if !ok {
			t.Fatalf("StatusFromRisk(%d) returned non-terminal status", r)
		}
		if got := SeverityFromRisk(r); got != want {
			t.Errorf("risk %d: severity %s does not match status band (want %s)", r, got, want)
		}
	}
}

func TestClassifier_MessagePerBand(t *testing.T) {
	if MessageFromRisk(10) != messageSafe {
		t.Error("expected safe message for risk 10")
	}
	if MessageFromRisk(30) != messageWarning {
		t.Error("expected warning message for risk 30")
	}
	if MessageFromRisk(70) != messageDanger {
		t.Error("expected danger message for risk 70")
	}

	// Exactly three distinct messages across the whole domain.
	seen := map[string]bool{}
	for r := 0; r <= 100; r++ {
		seen[MessageFromRisk(r)] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct messages, got %d", len(seen))
	}
}
