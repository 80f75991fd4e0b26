package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliottsj/botbot-web/internal/application/metric"
	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/memory"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
)

type LogUsecase interface {
	// RecordLog stores a log line and pushes it to live stream subscribers.
	RecordLog(ctx context.Context, channelID uuid.UUID, command, nick, text string) (*models.Log, error)

	LatestLogs(ctx context.Context, channelID uuid.UUID, limit int) ([]*models.Log, error)
}

type logUsecase struct {
	logRepo     repository.LogRepository
	channelRepo repository.ChannelRepository
	streamRepo  memory.StreamRepository
}

func NewLogUsecase(
	logRepo repository.LogRepository,
	channelRepo repository.ChannelRepository,
	streamRepo memory.StreamRepository,
) LogUsecase {
	return &logUsecase{
		logRepo:     logRepo,
		channelRepo: channelRepo,
		streamRepo:  streamRepo,
	}
}

func (uc *logUsecase) RecordLog(ctx context.Context, channelID uuid.UUID, command, nick, text string) (*models.Log, error) {
	if _, err := uc.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, fmt.Errorf("get channel: %w", err)
	}

	log := models.NewLog(channelID, command, nick, text)

	if err := uc.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("record log: %w", err)
	}

	metric.IncrementLogsRecorded()

	uc.streamRepo.Broadcast(channelID, log)

	return log, nil
}

func (uc *logUsecase) LatestLogs(ctx context.Context, channelID uuid.UUID, limit int) ([]*models.Log, error) {
	return uc.logRepo.LatestByChannelID(ctx, channelID, limit)
}
