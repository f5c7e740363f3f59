package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile carries the lifetime points of a user across all competitions
type Profile struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	TotalPoints int       `db:"total_points" json:"total_points"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
