// Package session pairs enter/exit events into attendance sessions.
//
// Sessions are never stored; they are recomputed from the event log on every
// read. Input logs must be in ascending timestamp order for a single user.
package session

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"attendance-tracker/models"
)

// Placeholder is rendered for sessions without a positive duration.
const Placeholder = "—"

type Session struct {
	Entered         time.Time
	Exited          *time.Time
	ConfidenceScore *float64
}

func (s Session) Open() bool {
	return s.Exited == nil
}

// Minutes returns the whole minutes between enter and exit. ok is false for
// open sessions and for non-positive spans.
func (s Session) Minutes() (minutes int, ok bool) {
	if s.Exited == nil {
		return 0, false
	}
	minutes = int(s.Exited.Sub(s.Entered) / time.Minute)
	if minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// Derive yields the sessions of logs. An enter while a session is open
// closes that session without an exit; an exit with nothing open is dropped.
// The sequence can be ranged over any number of times.
func Derive(logs []models.AttendanceLog) iter.Seq[Session] {
	return func(yield func(Session) bool) {
		var current *Session
		for _, l := range logs {
			switch l.Action {
			case models.ActionEnter:
				if current != nil {
					if !yield(*current) {
						return
					}
				}
				current = &Session{Entered: l.Timestamp, ConfidenceScore: l.ConfidenceScore}
			case models.ActionExit:
				if current == nil {
					continue
				}
				exited := l.Timestamp
				current.Exited = &exited
				if !yield(*current) {
					return
				}
				current = nil
			}
		}
		if current != nil {
			yield(*current)
		}
	}
}

func Collect(logs []models.AttendanceLog) []Session {
	return slices.Collect(Derive(logs))
}

// FormatDuration renders a session length as "8h 0m" or "45m".
func FormatDuration(s Session) string {
	minutes, ok := s.Minutes()
	if !ok {
		return Placeholder
	}
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func View(s Session) models.SessionView {
	v := models.SessionView{
		Entered:         s.Entered,
		Exited:          s.Exited,
		ConfidenceScore: s.ConfidenceScore,
		Duration:        FormatDuration(s),
	}
	if minutes, ok := s.Minutes(); ok {
		v.DurationMinutes = &minutes
	}
	return v
}

func Views(logs []models.AttendanceLog) []models.SessionView {
	views := []models.SessionView{}
	for s := range Derive(logs) {
		views = append(views, View(s))
	}
	return views
}

// UserLogs is the slice of a day's logs that belongs to one user.
type UserLogs struct {
	UserID string
	Logs   []models.AttendanceLog
}

// GroupByUser splits logs per user, keeping the order in which users first
// appear and the relative order of each user's events.
func GroupByUser(logs []models.AttendanceLog) []UserLogs {
	index := make(map[string]int)
	var groups []UserLogs
	for _, l := range logs {
		i, ok := index[l.UserID]
		if !ok {
			i = len(groups)
			index[l.UserID] = i
			groups = append(groups, UserLogs{UserID: l.UserID})
		}
		groups[i].Logs = append(groups[i].Logs, l)
	}
	return groups
}
