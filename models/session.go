package models

import "time"

// SessionView is a derived session shaped for the admin UI.
type SessionView struct {
	Entered         time.Time  `json:"entered"`
	Exited          *time.Time `json:"exited,omitempty"`
	ConfidenceScore *float64   `json:"confidence_score"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Duration        string     `json:"duration" example:"8h 0m"`
}

type UserSessions struct {
	UserID   string        `json:"user_id"`
	Users    *UserSummary  `json:"users"`
	Sessions []SessionView `json:"sessions"`
}
