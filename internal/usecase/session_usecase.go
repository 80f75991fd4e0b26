package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/elliottsj/botbot-web/internal/domain/runtime"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/memory"
)

const sessionTTL = 14 * 24 * time.Hour

// SessionUsecase manages visitor sessions and the signed cookie tokens that
// reference them.
type SessionUsecase interface {
	Create() *runtime.Session
	Get(id uuid.UUID) (*runtime.Session, bool)
	Save(s *runtime.Session)
	Delete(id uuid.UUID)

	// IssueToken signs a cookie token whose subject is the session ID.
	IssueToken(s *runtime.Session) (string, error)

	// ParseToken verifies a cookie token and returns the session ID.
	ParseToken(token string) (uuid.UUID, error)
}

type sessionUsecase struct {
	secret      []byte
	sessionRepo memory.SessionRepository
}

func NewSessionUsecase(secret []byte, sessionRepo memory.SessionRepository) SessionUsecase {
	return &sessionUsecase{
		secret:      secret,
		sessionRepo: sessionRepo,
	}
}

func (uc *sessionUsecase) Create() *runtime.Session {
	return uc.sessionRepo.Create()
}

func (uc *sessionUsecase) Get(id uuid.UUID) (*runtime.Session, bool) {
	return uc.sessionRepo.Get(id)
}

func (uc *sessionUsecase) Save(s *runtime.Session) {
	uc.sessionRepo.Save(s)
}

func (uc *sessionUsecase) Delete(id uuid.UUID) {
	uc.sessionRepo.Delete(id)
}

func (uc *sessionUsecase) IssueToken(s *runtime.Session) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   s.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(uc.secret)
}

func (uc *sessionUsecase) ParseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return uc.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token")
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session subject: %w", err)
	}

	return sessionID, nil
}
