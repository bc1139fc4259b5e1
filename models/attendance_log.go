package models

import "time"

// AttendanceLog is one append-only enter/exit event.
type AttendanceLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Action          string    `json:"action"`
	Timestamp       time.Time `json:"timestamp"`
	ConfidenceScore *float64  `json:"confidence_score"`
}

type AttendanceLogWithUser struct {
	AttendanceLog
	Users *UserSummary `json:"users"`
}

type AttendanceLogPatch struct {
	Action          Field[string]
	ConfidenceScore Field[float64]
	Timestamp       Field[time.Time]
}

func (p AttendanceLogPatch) IsEmpty() bool {
	return !p.Action.Set && !p.ConfidenceScore.Set && !p.Timestamp.Set
}
