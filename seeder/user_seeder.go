package seeder

import (
	"context"
	"time"

	"cdr.dev/slog/v3"
	"golang.org/x/xerrors"

	"attendance-tracker/models"
	"attendance-tracker/repository"
)

// DemoUsers are upserted by SeedUsers so attendance joins resolve on a
// fresh database.
var DemoUsers = []models.User{
	{UserID: "EMP-001", Name: "Andi Pratama", ImageURL: "https://i.pravatar.cc/150?u=EMP-001"},
	{UserID: "EMP-002", Name: "Budi Santoso", ImageURL: "https://i.pravatar.cc/150?u=EMP-002"},
	{UserID: "EMP-003", Name: "Citra Lestari", ImageURL: "https://i.pravatar.cc/150?u=EMP-003"},
	{UserID: "EMP-004", Name: "Dewi Anggraini", ImageURL: "https://i.pravatar.cc/150?u=EMP-004"},
	{UserID: "EMP-005", Name: "Eko Wijaya", ImageURL: "https://i.pravatar.cc/150?u=EMP-005"},
}

func SeedUsers(ctx context.Context, userRepo repository.UserRepository, logger slog.Logger) error {
	return Seed(ctx, userRepo, logger, DemoUsers)
}

// Seed upserts users. The reserved id is refused before anything is written.
func Seed(ctx context.Context, userRepo repository.UserRepository, logger slog.Logger, users []models.User) error {
	for _, u := range users {
		if u.UserID == models.ReservedUserID {
			return xerrors.Errorf("user id %q is reserved", u.UserID)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Info(ctx, "seeding users", slog.F("count", len(users)))
	for _, u := range users {
		user := u
		if err := userRepo.Upsert(ctx, &user); err != nil {
			return xerrors.Errorf("seed user %s: %w", u.UserID, err)
		}
		logger.Debug(ctx, "user seeded", slog.F("user_id", u.UserID))
	}
	return nil
}
