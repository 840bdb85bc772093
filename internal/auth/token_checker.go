package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenChecker verifies a bearer token: signature and expiry checks are
// stateless, then redis is consulted for an explicit logout revocation.
type TokenChecker struct {
	signer      *TokenSigner
	redisClient *redis.Client
	NowFunc     func() time.Time
}

func NewTokenChecker(signer *TokenSigner, redisClient *redis.Client) *TokenChecker {
	return &TokenChecker{
		signer:      signer,
		redisClient: redisClient,
		NowFunc:     time.Now,
	}
}

func (tc *TokenChecker) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := tc.signer.Verify(token, tc.NowFunc())
	if err != nil {
		return nil, err
	}

	cmd := tc.redisClient.Get(ctx, revokedKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			// not revoked
			return claims, nil
		}
		return nil, err
	}

	return nil, ErrInvalidToken
}

// TokenValid reports verification success only; used by the auth middleware,
// which does not care about the decoded claims.
func (tc *TokenChecker) TokenValid(ctx context.Context, token string) error {
	_, err := tc.Verify(ctx, token)
	return err
}
