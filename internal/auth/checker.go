package auth

import "context"

var _ Checker = (*TokenChecker)(nil)

type Checker interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
