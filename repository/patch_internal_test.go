package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"attendance-tracker/models"
)

func TestAttendanceAssignments(t *testing.T) {
	t.Parallel()

	t.Run("ClearTimeOut", func(t *testing.T) {
		t.Parallel()
		set := attendanceAssignments(models.AttendancePatch{TimeOut: models.Some[*time.Time](nil)})
		require.Len(t, set, 1)
		v, ok := set["time_out"]
		require.True(t, ok)
		require.Nil(t, v)
	})

	t.Run("AllFields", func(t *testing.T) {
		t.Parallel()
		out := time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
		set := attendanceAssignments(models.AttendancePatch{
			Status:          models.Some(models.StatusLate),
			TimeIn:          models.Some(out.Add(-8 * time.Hour)),
			TimeOut:         models.Some(&out),
			ConfidenceScore: models.Some(0.7),
		})
		require.Equal(t, models.StatusLate, set["status"])
		require.Equal(t, out, set["time_out"])
		require.Equal(t, 0.7, set["confidence_score"])
		require.Len(t, set, 4)
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, attendanceAssignments(models.AttendancePatch{}))
		require.Empty(t, attendanceLogAssignments(models.AttendanceLogPatch{}))
	})

	t.Run("LogFields", func(t *testing.T) {
		t.Parallel()
		set := attendanceLogAssignments(models.AttendanceLogPatch{Action: models.Some(models.ActionExit)})
		require.Equal(t, map[string]any{"action": models.ActionExit}, set)
	})
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	base := errors.New(`duplicate key value violates unique constraint "users_pkey"`)
	err := storeErr("upsert user", base)
	require.Equal(t, base.Error(), err.Error())
	require.ErrorIs(t, err, base)

	var se *StoreError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "upsert user", se.Op)

	require.NoError(t, storeErr("noop", nil))
}
