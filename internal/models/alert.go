package models

import "time"

type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "low"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityHigh   AlertSeverity = "high"
)

type AlertType string

const (
	AlertTypeFloodWarning AlertType = "flood_warning"
	AlertTypeRoadClosed   AlertType = "road_closed"
	AlertTypeHeavyRain    AlertType = "heavy_rain"
	AlertTypeAllClear     AlertType = "all_clear"
	AlertTypeUnknown      AlertType = "unknown"
)

// Alert is a single notification-feed entry. RouteName is a display
// snapshot taken at creation time; RouteID is kept alongside so the
// alert survives a route rename without going stale.
type Alert struct {
	ID        string        `json:"id"`
	RouteID   string        `json:"route_id"`
	RouteName string        `json:"route_name"`
	Type      AlertType     `json:"type"`
	Message   string        `json:"message"`
	Severity  AlertSeverity `json:"severity"`
	Timestamp string        `json:"timestamp"`
	IsRead    bool          `json:"is_read"`
	CreatedAt time.Time     `json:"created_at"`
}

type NotificationSettings struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	HighRiskOnly         bool `json:"high_risk_only"`
	VibrationEnabled     bool `json:"vibration_enabled"`
}

// FormatTimestamp renders a time the way alert and route cards display
// it: day-first date plus 24h clock.
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
