package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elliottsj/botbot-web/internal/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password, email, nick, timezone, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Password,
		user.Email,
		user.Nick,
		user.Timezone,
		user.IsStaff,
		user.IsSuperuser,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return fmt.Errorf("create user no rows affected: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, nick = $3, timezone = $4, updated_at = $5
		WHERE id = $6
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Nick,
		user.Timezone,
		time.Now(),
		user.ID,
	)

	return err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE users SET password = $1, updated_at = $2 WHERE id = $3",
		hash,
		time.Now(),
		id,
	)

	return err
}

func (r *userRepo) UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE users SET timezone = $1, updated_at = $2 WHERE id = $3",
		timezone,
		time.Now(),
		id,
	)

	return err
}
