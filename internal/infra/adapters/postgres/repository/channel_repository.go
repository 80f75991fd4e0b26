package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elliottsj/botbot-web/internal/domain/models"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetActivePublicChannels returns public channels that have at least one
	// log line, most recently active first.
	GetActivePublicChannels(ctx context.Context) ([]*models.Channel, error)

	// GetPrivateChannelsByUserID returns non-public channels the user holds a
	// membership on.
	GetPrivateChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error)

	// GetAdminChannelsByUserID returns channels the user owns or administers.
	GetAdminChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error)
}

type channelRepo struct {
	db *sqlx.DB
}

func NewChannelRepo(db *sqlx.DB) ChannelRepository {
	return &channelRepo{db: db}
}

func (r *channelRepo) Create(ctx context.Context, channel *models.Channel) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO channels (id, chatbot_id, name, slug, is_public) VALUES ($1, $2, $3, $4, $5)",
		channel.ID,
		channel.ChatBotID,
		channel.Name,
		channel.Slug,
		channel.IsPublic,
	)

	return err
}

func (r *channelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	var channel models.Channel

	query := `
		SELECT c.*, (SELECT MAX(l.timestamp) FROM logs l WHERE l.channel_id = c.id) AS last_log_at
		FROM channels c
		WHERE c.id = $1
	`

	err := r.db.GetContext(ctx, &channel, query, id)
	if err != nil {
		return nil, err
	}

	return &channel, nil
}

func (r *channelRepo) Update(ctx context.Context, channel *models.Channel) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE channels SET name = $1, slug = $2, is_public = $3, updated_at = $4 WHERE id = $5",
		channel.Name,
		channel.Slug,
		channel.IsPublic,
		time.Now(),
		channel.ID,
	)

	return err
}

func (r *channelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM channels WHERE id = $1", id)

	return err
}

func (r *channelRepo) GetActivePublicChannels(ctx context.Context) ([]*models.Channel, error) {
	var channels []*models.Channel

	query := `
		SELECT c.*, MAX(l.timestamp) AS last_log_at
		FROM channels c
		INNER JOIN logs l ON l.channel_id = c.id
		WHERE c.is_public = true
		GROUP BY c.id
		ORDER BY last_log_at DESC
	`

	err := r.db.SelectContext(ctx, &channels, query)
	if err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *channelRepo) GetPrivateChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	var channels []*models.Channel

	query := `
		SELECT c.*
		FROM channels c
		INNER JOIN memberships m ON c.id = m.channel_id
		WHERE m.user_id = $1 AND c.is_public = false
		ORDER BY c.name
	`

	err := r.db.SelectContext(ctx, &channels, query, userID)
	if err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *channelRepo) GetAdminChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	var channels []*models.Channel

	query := `
		SELECT c.*
		FROM channels c
		INNER JOIN memberships m ON c.id = m.channel_id
		WHERE m.user_id = $1 AND (m.is_admin = true OR m.is_owner = true)
		ORDER BY c.name
	`

	err := r.db.SelectContext(ctx, &channels, query, userID)
	if err != nil {
		return nil, err
	}

	return channels, nil
}
