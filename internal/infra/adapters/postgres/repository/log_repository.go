package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elliottsj/botbot-web/internal/domain/models"
)

type LogRepository interface {
	Create(ctx context.Context, log *models.Log) error

	// LatestByChannelID returns the newest log lines, newest first.
	LatestByChannelID(ctx context.Context, channelID uuid.UUID, limit int) ([]*models.Log, error)
}

type logRepo struct {
	db *sqlx.DB
}

func NewLogRepo(db *sqlx.DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Create(ctx context.Context, log *models.Log) error {
	query := `
		INSERT INTO logs (id, channel_id, command, nick, text, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		log.ID,
		log.ChannelID,
		log.Command,
		log.Nick,
		log.Text,
		log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}

	return nil
}

func (r *logRepo) LatestByChannelID(ctx context.Context, channelID uuid.UUID, limit int) ([]*models.Log, error) {
	var logs []*models.Log

	query := `
		SELECT *
		FROM logs
		WHERE channel_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &logs, query, channelID, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
