package models

import "time"

type RouteStatus string

const (
	RouteStatusSafe    RouteStatus = "safe"
	RouteStatusWarning RouteStatus = "warning"
	RouteStatusDanger  RouteStatus = "danger"
	RouteStatusPending RouteStatus = "pending"
	RouteStatusFailed  RouteStatus = "failed"
)

// Route is a user-defined commute route with its latest flood-risk
// evaluation. RiskLevel is only meaningful when Status is safe, warning
// or danger; while pending or failed it is zero.
type Route struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	StartAddress string      `json:"start_address"`
	EndAddress   string      `json:"end_address"`
	Status       RouteStatus `json:"status"`
	LastUpdate   string      `json:"last_update"`
	RiskLevel    int         `json:"risk_level"`
	CreatedAt    time.Time   `json:"created_at"`
}
