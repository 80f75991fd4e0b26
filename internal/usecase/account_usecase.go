package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/elliottsj/botbot-web/internal/domain/input"
	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
)

var (
	// ErrPasswordMismatch carries the message rendered next to the
	// confirmation field.
	ErrPasswordMismatch = errors.New("The two password fields didn't match.")

	ErrInvalidTimezone = errors.New("invalid timezone")
)

// AccountUsecase covers signup, login credentials and profile management.
type AccountUsecase interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// UpdateProfile applies the profile fields of the settings form to the
	// user's own record.
	UpdateProfile(ctx context.Context, userID uuid.UUID, form *input.AccountForm) error

	// ChangePassword sets a new password after checking both fields match.
	ChangePassword(ctx context.Context, userID uuid.UUID, password1, password2 string) error

	// SetTimezone validates and persists a timezone preference.
	SetTimezone(ctx context.Context, userID uuid.UUID, timezone string) error
}

type accountUsecase struct {
	userRepo repository.UserRepository
}

func NewAccountUsecase(userRepo repository.UserRepository) AccountUsecase {
	return &accountUsecase{userRepo: userRepo}
}

func (uc *accountUsecase) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(username, email)
	user.Password = string(hashedPassword)

	if err = uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *accountUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *accountUsecase) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}

func (uc *accountUsecase) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *accountUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, form *input.AccountForm) error {
	if form.Timezone != "" && !ValidTimezone(form.Timezone) {
		return ErrInvalidTimezone
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	user.Username = form.Username
	user.Nick = form.Nick
	user.Timezone = form.Timezone

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (uc *accountUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, password1, password2 string) error {
	if password1 != password2 {
		return ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (uc *accountUsecase) SetTimezone(ctx context.Context, userID uuid.UUID, timezone string) error {
	if !ValidTimezone(timezone) {
		return ErrInvalidTimezone
	}

	if err := uc.userRepo.UpdateTimezone(ctx, userID, timezone); err != nil {
		return fmt.Errorf("update timezone: %w", err)
	}

	return nil
}

// ValidTimezone reports whether name is a known IANA timezone identifier.
func ValidTimezone(name string) bool {
	if name == "" {
		return false
	}

	_, err := time.LoadLocation(name)

	return err == nil
}
