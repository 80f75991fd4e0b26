package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elliottsj/botbot-web/internal/domain/models"
)

type ChatBotRepository interface {
	Create(ctx context.Context, bot *models.ChatBot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChatBot, error)
	ListActive(ctx context.Context) ([]*models.ChatBot, error)
}

type chatBotRepo struct {
	db *sqlx.DB
}

func NewChatBotRepo(db *sqlx.DB) ChatBotRepository {
	return &chatBotRepo{db: db}
}

func (r *chatBotRepo) Create(ctx context.Context, bot *models.ChatBot) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO chatbots (id, server, nick, is_active) VALUES ($1, $2, $3, $4)",
		bot.ID,
		bot.Server,
		bot.Nick,
		bot.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create chatbot: %w", err)
	}

	return nil
}

func (r *chatBotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ChatBot, error) {
	var bot models.ChatBot

	err := r.db.GetContext(ctx, &bot, "SELECT * FROM chatbots WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	return &bot, nil
}

func (r *chatBotRepo) ListActive(ctx context.Context) ([]*models.ChatBot, error) {
	var bots []*models.ChatBot

	err := r.db.SelectContext(ctx, &bots, "SELECT * FROM chatbots WHERE is_active = true")
	if err != nil {
		return nil, err
	}

	return bots, nil
}
