package models

import "time"

// User is the identity an attendance row is joined with.
type User struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the minimal identity embedded in attendance responses.
type UserSummary struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

func (u User) Summary() *UserSummary {
	return &UserSummary{
		UserID:   u.UserID,
		Name:     u.Name,
		ImageURL: u.ImageURL,
	}
}
