package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elliottsj/botbot-web/internal/domain/models"
)

type MembershipRepository interface {
	Create(ctx context.Context, m *models.Membership) error
	GetByUserAndChannel(ctx context.Context, userID, channelID uuid.UUID) (*models.Membership, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error)
	Delete(ctx context.Context, userID, channelID uuid.UUID) error
}

type membershipRepo struct {
	db *sqlx.DB
}

func NewMembershipRepo(db *sqlx.DB) MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) Create(ctx context.Context, m *models.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, channel_id, is_owner, is_admin)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.ChannelID, m.IsOwner, m.IsAdmin)
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}

	return nil
}

func (r *membershipRepo) GetByUserAndChannel(ctx context.Context, userID, channelID uuid.UUID) (*models.Membership, error) {
	var m models.Membership

	err := r.db.GetContext(
		ctx,
		&m,
		"SELECT * FROM memberships WHERE user_id = $1 AND channel_id = $2",
		userID,
		channelID,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *membershipRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error) {
	var memberships []*models.Membership

	err := r.db.SelectContext(
		ctx,
		&memberships,
		"SELECT * FROM memberships WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *membershipRepo) Delete(ctx context.Context, userID, channelID uuid.UUID) error {
	_, err := r.db.ExecContext(
		ctx,
		"DELETE FROM memberships WHERE user_id = $1 AND channel_id = $2",
		userID,
		channelID,
	)

	return err
}
