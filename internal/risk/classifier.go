package risk

import "github.com/rmaia/floodwatch/internal/models"

// Band thresholds over the 0-100 risk scale. A boundary value belongs
// to the band above it: 30 is warning, 70 is danger.
const (
	warningThreshold = 30
	dangerThreshold  = 70
)

const (
	messageSafe    = "Normal conditions. No flood risk detected for this route."
	messageWarning = "Moderate flood risk. Heavy rain may cause water to accumulate along this route."
	messageDanger  = "High flood risk. Flooding is likely along this route, consider an alternative."
)

// StatusFromRisk classifies a risk level into a route status. Input is
// expected to already be within 0-100 per the prediction service
// contract; no clamping is done here.
func StatusFromRisk(risk int) models.RouteStatus {
	switch {
	case risk < warningThreshold:
		return models.RouteStatusSafe
	case risk < dangerThreshold:
		return models.RouteStatusWarning
	default:
		return models.RouteStatusDanger
	}
}

// SeverityFromRisk mirrors StatusFromRisk on the alert axis: the two
// classifications are always in lock-step (safe/low, warning/medium,
// danger/high).
func SeverityFromRisk(risk int) models.AlertSeverity {
	switch {
	case risk < warningThreshold:
		return models.AlertSeverityLow
	case risk < dangerThreshold:
		return models.AlertSeverityMedium
	default:
		return models.AlertSeverityHigh
	}
}

// MessageFromRisk returns the fixed user-facing message for the band
// the risk level falls into.
func MessageFromRisk(risk int) string {
	switch {
	case risk < warningThreshold:
		return messageSafe
	case risk < dangerThreshold:
		return messageWarning
	default:
		return messageDanger
	}
}
