package models

import "time"

const (
	ActionEnter = "enter"
	ActionExit  = "exit"
)

const (
	StatusEntered = "entered"
	StatusExited  = "exited"
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Attendance is a status-row record: one row per user per day.
type Attendance struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Date            string     `json:"date"`
	Status          string     `json:"status"`
	TimeIn          time.Time  `json:"time_in"`
	TimeOut         *time.Time `json:"time_out"`
	ConfidenceScore *float64   `json:"confidence_score"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AttendanceWithUser struct {
	Attendance
	Users *UserSummary `json:"users"`
}

// ReservedUserID collides with the /attendance/sessions route and is never
// accepted as a user id.
const ReservedUserID = "sessions"

// AttendanceActionPayload is the body of POST /attendance for both models.
type AttendanceActionPayload struct {
	UserID          string   `json:"user_id" validate:"required,ne=sessions"`
	Action          string   `json:"action" validate:"required"`
	ConfidenceScore *float64 `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
}

// AttendancePatch is the sparse update accepted by PUT /attendance/:id on
// status rows. TimeOut set with a nil value clears the column.
type AttendancePatch struct {
	Status          Field[string]
	TimeIn          Field[time.Time]
	TimeOut         Field[*time.Time]
	ConfidenceScore Field[float64]
}

func (p AttendancePatch) IsEmpty() bool {
	return !p.Status.Set && !p.TimeIn.Set && !p.TimeOut.Set && !p.ConfidenceScore.Set
}

// IsValidStatus reports whether s is one of the statuses the admin UI offers.
func IsValidStatus(s string) bool {
	switch s {
	case StatusEntered, StatusExited, StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}

func IsValidAction(a string) bool {
	return a == ActionEnter || a == ActionExit
}
