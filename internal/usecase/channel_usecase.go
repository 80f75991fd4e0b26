package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
)

type ChannelUsecase interface {
	GetChannel(ctx context.Context, id uuid.UUID) (*models.Channel, error)

	// GetActivePublicChannels lists public channels with logged activity,
	// visible to everyone including anonymous visitors.
	GetActivePublicChannels(ctx context.Context) ([]*models.Channel, error)

	// GetPrivateChannels lists non-public channels the user is a member of.
	GetPrivateChannels(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error)

	// GetAdminChannels lists channels where the user is owner or admin.
	GetAdminChannels(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error)

	// CanView reports whether the user (uuid.Nil for anonymous) may see the
	// channel. Public channels are visible to everyone, private ones to
	// members only.
	CanView(ctx context.Context, userID, channelID uuid.UUID) (bool, error)
}

type channelUsecase struct {
	channelRepo    repository.ChannelRepository
	membershipRepo repository.MembershipRepository
}

func NewChannelUsecase(channelRepo repository.ChannelRepository, membershipRepo repository.MembershipRepository) ChannelUsecase {
	return &channelUsecase{
		channelRepo:    channelRepo,
		membershipRepo: membershipRepo,
	}
}

func (uc *channelUsecase) GetChannel(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	return uc.channelRepo.GetByID(ctx, id)
}

func (uc *channelUsecase) GetActivePublicChannels(ctx context.Context) ([]*models.Channel, error) {
	channels, err := uc.channelRepo.GetActivePublicChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active public channels: %w", err)
	}

	return channels, nil
}

func (uc *channelUsecase) GetPrivateChannels(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	channels, err := uc.channelRepo.GetPrivateChannelsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get private channels: %w", err)
	}

	return channels, nil
}

func (uc *channelUsecase) GetAdminChannels(ctx context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	channels, err := uc.channelRepo.GetAdminChannelsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get admin channels: %w", err)
	}

	return channels, nil
}

func (uc *channelUsecase) CanView(ctx context.Context, userID, channelID uuid.UUID) (bool, error) {
	channel, err := uc.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("get channel: %w", err)
	}

	if channel.IsPublic {
		return true, nil
	}

	if userID == uuid.Nil {
		return false, nil
	}

	_, err = uc.membershipRepo.GetByUserAndChannel(ctx, userID, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get membership: %w", err)
	}

	return true, nil
}
