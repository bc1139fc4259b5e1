package util_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"attendance-tracker/models"
	util "attendance-tracker/pkg/utils"
)

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		score := 0.5
		require.Nil(t, util.ValidateStruct(models.AttendanceActionPayload{UserID: "u1", Action: "enter", ConfidenceScore: &score}))
	})

	t.Run("MissingFields", func(t *testing.T) {
		t.Parallel()
		errs := util.ValidateStruct(models.AttendanceActionPayload{})
		require.Len(t, errs, 2)
		require.True(t, util.HasTagFailure(errs, "user_id", "required"))
		require.True(t, util.HasTagFailure(errs, "action", "required"))
		require.Equal(t, "Field 'user_id' is required.", errs[0].Msg)
	})

	t.Run("ReservedUserID", func(t *testing.T) {
		t.Parallel()
		errs := util.ValidateStruct(models.AttendanceActionPayload{UserID: models.ReservedUserID, Action: "enter"})
		require.Len(t, errs, 1)
		require.True(t, util.HasTagFailure(errs, "user_id", "ne"))
		require.Equal(t, "Field 'user_id' must not be 'sessions'.", errs[0].Msg)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		t.Parallel()
		score := 1.5
		errs := util.ValidateStruct(models.AttendanceActionPayload{UserID: "u1", Action: "exit", ConfidenceScore: &score})
		require.Len(t, errs, 1)
		require.Equal(t, "confidence_score", errs[0].Field)
		require.Equal(t, "lte", errs[0].Tag)
	})
}
