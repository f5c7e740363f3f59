package store

import (
	"context"

	users "github.com/AdamBeresnev/pitwall/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	q sqlx.ExtContext
}

const (
	getUserQuery        = "SELECT * FROM users WHERE id = ?"
	getUserByEmailQuery = "SELECT * FROM users WHERE email = ?"
	createUserQuery     = `
		INSERT INTO users (id, email, username, created_at) VALUES
		(:id, :email, :username, :created_at)
	`
	getProfileQuery    = "SELECT * FROM profiles WHERE user_id = ?"
	createProfileQuery = `
		INSERT INTO profiles (user_id, display_name, total_points, updated_at) VALUES
		(:user_id, :display_name, :total_points, :updated_at)
	`
	updateProfileTotalPointsQuery = `
		UPDATE profiles SET
		total_points = ?,
		updated_at = ?
		WHERE user_id = ?
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{q: db}
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := sqlx.GetContext(ctx, s.q, &user, s.q.Rebind(getUserQuery), id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	err := sqlx.GetContext(ctx, s.q, &user, s.q.Rebind(getUserByEmailQuery), email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	stampIfZero(&user.CreatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, createUserQuery, user)
	return err
}

func (s *UserStore) GetProfile(ctx context.Context, userID uuid.UUID) (*users.Profile, error) {
	var profile users.Profile
	err := sqlx.GetContext(ctx, s.q, &profile, s.q.Rebind(getProfileQuery), userID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) CreateProfile(ctx context.Context, profile *users.Profile) error {
	stampIfZero(&profile.UpdatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, createProfileQuery, profile)
	return err
}

func (s *UserStore) UpdateProfileTotalPoints(ctx context.Context, userID uuid.UUID, totalPoints int) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind(updateProfileTotalPointsQuery), totalPoints, now(), userID)
	return err
}
