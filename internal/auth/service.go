package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/prima-crm/prima-crm/internal/shared"
)

const tokenPrefix = "session:"

// Service wraps authentication business rules. Tokens live in redis with the
// session TTL; postgres keeps an audit row per login.
type Service struct {
	repo  Repository
	redis *redis.Client
	ttl   time.Duration
}

// NewService constructs a new Service.
func NewService(repo Repository, client *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{repo: repo, redis: client, ttl: ttl}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (string, *User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	actor := shared.Actor{ID: user.ID, RoleID: user.RoleID, Name: user.Nama}
	raw, err := json.Marshal(actor)
	if err != nil {
		return "", nil, err
	}
	if err := s.redis.Set(ctx, tokenPrefix+token, raw, s.ttl).Err(); err != nil {
		return "", nil, err
	}
	err = s.repo.CreateSession(ctx, Session{
		ID:        token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
		IP:        ip,
		UA:        ua,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Resolve maps a bearer token back to its actor.
func (s *Service) Resolve(ctx context.Context, token string) (shared.Actor, error) {
	raw, err := s.redis.Get(ctx, tokenPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return shared.Actor{}, shared.ErrInvalidCredentials
	}
	if err != nil {
		return shared.Actor{}, err
	}
	var actor shared.Actor
	if err := json.Unmarshal(raw, &actor); err != nil {
		return shared.Actor{}, err
	}
	return actor, nil
}

// Logout revokes a bearer token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, tokenPrefix+token).Err(); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, token)
}
