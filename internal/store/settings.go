package store

import (
	"sync"

	"github.com/rmaia/floodwatch/internal/models"
)

// Settings holds the user's notification preferences. Constructed once
// at startup with configured defaults and shared by reference with the
// alert store and the API.
type Settings struct {
	mu                   sync.RWMutex
	notificationsEnabled bool
	highRiskOnly         bool
	vibrationEnabled     bool
}

func NewSettings(notificationsEnabled, highRiskOnly, vibrationEnabled bool) *Settings {
	return &Settings{
		notificationsEnabled: notificationsEnabled,
		highRiskOnly:         highRiskOnly,
		vibrationEnabled:     vibrationEnabled,
	}
}

func (s *Settings) Snapshot() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.NotificationSettings{
		NotificationsEnabled: s.notificationsEnabled,
		HighRiskOnly:         s.highRiskOnly,
		VibrationEnabled:     s.vibrationEnabled,
	}
}

func (s *Settings) Update(ns models.NotificationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationsEnabled = ns.NotificationsEnabled
	s.highRiskOnly = ns.HighRiskOnly
	s.vibrationEnabled = ns.VibrationEnabled
}
