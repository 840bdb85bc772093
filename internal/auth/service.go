package auth

import (
	"context"
	"errors"
	"time"

	"github.com/hossin-jomm/creative-backend/pkg"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "creative-service-revoked||"

var (
	ErrWrongUsername = errors.New("wrong username")
	ErrWrongPassword = errors.New("wrong password")
)

// Admin is the single operator account. There is no authorization tier
// beyond authentication - one account, one role.
type Admin struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string
	Password string
}

type Service struct {
	admin       *Admin
	signer      *TokenSigner
	redisClient *redis.Client
	// ability to inject a clock for unit testing
	NowFunc func() time.Time
}

func NewService(
	admin *Admin,
	signer *TokenSigner,
	redisClient *redis.Client,
) *Service {
	return &Service{
		admin:       admin,
		signer:      signer,
		redisClient: redisClient,
		NowFunc:     time.Now,
	}
}

// Login checks the given credentials against the configured admin account
// and issues a signed token on success.
func (s *Service) Login(_ context.Context, credentials Credentials) (string, error) {
	if credentials.Username != s.admin.Username {
		return "", ErrWrongUsername
	}
	if !pkg.CheckPasswordHash(credentials.Password, s.admin.PasswordHash) {
		return "", ErrWrongPassword
	}

	return s.signer.Sign(s.admin.Username, RoleAdmin, s.NowFunc())
}

// Logout revokes a still-valid token. The revocation entry lives in redis
// for the token's remaining lifetime, after which the expiry check alone
// rejects it.
func (s *Service) Logout(ctx context.Context, token string) error {
	now := s.NowFunc()
	claims, err := s.signer.Verify(token, now)
	if err != nil {
		return err
	}

	remaining := time.Unix(claims.ExpiresAt, 0).Sub(now)
	cmdSet := s.redisClient.Set(ctx, revokedKeyPrefix+token, now.Unix(), remaining)
	if err := cmdSet.Err(); err != nil {
		return err
	}

	return nil
}
