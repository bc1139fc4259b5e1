package seeder_test

import (
	"context"
	"errors"
	"testing"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/stretchr/testify/require"

	"attendance-tracker/models"
	"attendance-tracker/seeder"
)

type recordingUsers struct {
	upserted []models.User
	err      error
}

func (r *recordingUsers) FindAll(context.Context) ([]models.User, error) { return r.upserted, nil }

func (r *recordingUsers) FindByUserID(context.Context, string) (*models.User, error) {
	return nil, nil
}

func (r *recordingUsers) Upsert(_ context.Context, u *models.User) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, *u)
	return nil
}

func TestSeedUsers(t *testing.T) {
	t.Parallel()

	t.Run("UpsertsAll", func(t *testing.T) {
		t.Parallel()
		repo := &recordingUsers{}
		err := seeder.SeedUsers(context.Background(), repo, slogtest.Make(t, nil))
		require.NoError(t, err)
		require.Len(t, repo.upserted, len(seeder.DemoUsers))
		require.Equal(t, seeder.DemoUsers[0].UserID, repo.upserted[0].UserID)
	})

	t.Run("RejectsReservedID", func(t *testing.T) {
		t.Parallel()
		repo := &recordingUsers{}
		err := seeder.Seed(context.Background(), repo, slogtest.Make(t, nil), []models.User{
			{UserID: "EMP-010", Name: "Fajar"},
			{UserID: models.ReservedUserID, Name: "Sessions"},
		})
		require.ErrorContains(t, err, "reserved")
		require.Empty(t, repo.upserted)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		t.Parallel()
		repo := &recordingUsers{err: errors.New("connection refused")}
		err := seeder.SeedUsers(context.Background(), repo, slogtest.Make(t, nil))
		require.ErrorContains(t, err, "connection refused")
	})
}
