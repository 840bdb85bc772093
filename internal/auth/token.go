package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// TokenTTL - admin tokens expire 24 hours after issuance, there is no
// refresh mechanism; an expired token forces a re-login.
const TokenTTL = 24 * time.Hour

const RoleAdmin = "admin"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

// TokenSigner issues and verifies admin tokens. A token is
// base64url(JSON claims) + "." + base64url(HMAC-SHA256 signature),
// verified stateless-ly against the shared secret.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (ts *TokenSigner) Sign(username, role string, issuedAt time.Time) (string, error) {
	claims := Claims{
		Username:  username,
		Role:      role,
		ExpiresAt: issuedAt.Add(ts.ttl).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(payload) +
		"." +
		base64.RawURLEncoding.EncodeToString(ts.signature(payload)), nil
}

func (ts *TokenSigner) Verify(token string, now time.Time) (*Claims, error) {
	payloadPart, signaturePart, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return nil, ErrInvalidToken
	}
	signature, err := base64.RawURLEncoding.DecodeString(signaturePart)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !hmac.Equal(signature, ts.signature(payload)) {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if now.Unix() >= claims.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

func (ts *TokenSigner) signature(payload []byte) []byte {
	mac := hmac.New(sha256.New, ts.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
