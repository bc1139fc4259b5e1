package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-tracker/models"
)

type postgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, storeErr("find users", err)
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *postgresUserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	u := row.toModel()
	return &u, nil
}

func (r *postgresUserRepository) Upsert(ctx context.Context, user *models.User) error {
	row := userRow{
		UserID:   user.UserID,
		Name:     user.Name,
		ImageURL: user.ImageURL,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "image_url"}),
		}).
		Create(&row).Error
	return storeErr("upsert user", err)
}
