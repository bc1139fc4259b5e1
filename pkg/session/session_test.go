package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-tracker/models"
	"attendance-tracker/pkg/session"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func event(user, action string, ts time.Time) models.AttendanceLog {
	return models.AttendanceLog{UserID: user, Action: action, Timestamp: ts}
}

func TestDerive(t *testing.T) {
	t.Parallel()

	t.Run("EnterExitEnter", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{
			event("u1", models.ActionEnter, at(9, 0)),
			event("u1", models.ActionExit, at(17, 0)),
			event("u1", models.ActionEnter, at(18, 0)),
		}
		sessions := session.Collect(logs)
		require.Len(t, sessions, 2)
		require.Equal(t, at(9, 0), sessions[0].Entered)
		require.NotNil(t, sessions[0].Exited)
		require.Equal(t, at(17, 0), *sessions[0].Exited)
		require.Equal(t, at(18, 0), sessions[1].Entered)
		require.True(t, sessions[1].Open())
		require.Equal(t, "8h 0m", session.FormatDuration(sessions[0]))
	})

	t.Run("LoneExit", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{event("u1", models.ActionExit, at(9, 0))}
		require.Empty(t, session.Collect(logs))
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, session.Collect(nil))
	})

	t.Run("DoubleEnterClosesPrevious", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{
			event("u1", models.ActionEnter, at(8, 0)),
			event("u1", models.ActionEnter, at(9, 0)),
			event("u1", models.ActionExit, at(10, 30)),
		}
		sessions := session.Collect(logs)
		require.Len(t, sessions, 2)
		assert.True(t, sessions[0].Open())
		assert.Equal(t, at(8, 0), sessions[0].Entered)
		assert.Equal(t, "1h 30m", session.FormatDuration(sessions[1]))
	})

	t.Run("ExitAfterClosedSessionDropped", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{
			event("u1", models.ActionEnter, at(8, 0)),
			event("u1", models.ActionExit, at(9, 0)),
			event("u1", models.ActionExit, at(10, 0)),
		}
		sessions := session.Collect(logs)
		require.Len(t, sessions, 1)
		require.Equal(t, at(9, 0), *sessions[0].Exited)
	})

	t.Run("CarriesEnterConfidence", func(t *testing.T) {
		t.Parallel()
		score := 0.93
		enter := event("u1", models.ActionEnter, at(8, 0))
		enter.ConfidenceScore = &score
		sessions := session.Collect([]models.AttendanceLog{enter})
		require.Len(t, sessions, 1)
		require.NotNil(t, sessions[0].ConfidenceScore)
		require.InDelta(t, 0.93, *sessions[0].ConfidenceScore, 1e-9)
	})

	t.Run("Restartable", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{
			event("u1", models.ActionEnter, at(9, 0)),
			event("u1", models.ActionExit, at(10, 0)),
		}
		seq := session.Derive(logs)
		first, second := 0, 0
		for range seq {
			first++
		}
		for range seq {
			second++
		}
		require.Equal(t, 1, first)
		require.Equal(t, first, second)
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		t.Parallel()
		logs := []models.AttendanceLog{
			event("u1", models.ActionEnter, at(9, 0)),
			event("u1", models.ActionEnter, at(10, 0)),
			event("u1", models.ActionEnter, at(11, 0)),
		}
		n := 0
		for range session.Derive(logs) {
			n++
			break
		}
		require.Equal(t, 1, n)
	})
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	exit := func(ts time.Time) *time.Time { return &ts }
	cases := []struct {
		name string
		s    session.Session
		want string
	}{
		{"Open", session.Session{Entered: at(9, 0)}, session.Placeholder},
		{"Zero", session.Session{Entered: at(9, 0), Exited: exit(at(9, 0))}, session.Placeholder},
		{"Negative", session.Session{Entered: at(9, 0), Exited: exit(at(8, 0))}, session.Placeholder},
		{"UnderAMinute", session.Session{Entered: at(9, 0), Exited: exit(at(9, 0).Add(59 * time.Second))}, session.Placeholder},
		{"MinutesOnly", session.Session{Entered: at(9, 0), Exited: exit(at(9, 45))}, "45m"},
		{"HoursAndMinutes", session.Session{Entered: at(9, 0), Exited: exit(at(11, 5))}, "2h 5m"},
		{"TruncatesSeconds", session.Session{Entered: at(9, 0), Exited: exit(at(9, 1).Add(59 * time.Second))}, "1m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, session.FormatDuration(tc.s))
		})
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	exited := at(17, 0)
	v := session.View(session.Session{Entered: at(9, 0), Exited: &exited})
	require.NotNil(t, v.DurationMinutes)
	require.Equal(t, 480, *v.DurationMinutes)
	require.Equal(t, "8h 0m", v.Duration)

	open := session.View(session.Session{Entered: at(9, 0)})
	require.Nil(t, open.DurationMinutes)
	require.Equal(t, session.Placeholder, open.Duration)

	require.NotNil(t, session.Views(nil))
}

func TestGroupByUser(t *testing.T) {
	t.Parallel()

	logs := []models.AttendanceLog{
		event("b", models.ActionEnter, at(8, 0)),
		event("a", models.ActionEnter, at(8, 30)),
		event("b", models.ActionExit, at(12, 0)),
		event("a", models.ActionExit, at(13, 0)),
	}
	groups := session.GroupByUser(logs)
	require.Len(t, groups, 2)
	require.Equal(t, "b", groups[0].UserID)
	require.Equal(t, "a", groups[1].UserID)
	require.Len(t, groups[0].Logs, 2)
	require.Equal(t, models.ActionExit, groups[0].Logs[1].Action)
}
