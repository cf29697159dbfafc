package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const signingAlg = "HS256"

var ErrNoSubject = errors.New("token has no subject")

// Config holds the shared secret report tokens are signed with.
type Config struct {
	Secret string        `mapstructure:"jwt_secret"`
	TTL    time.Duration `mapstructure:"jwt_ttl"`
}

// New returns the HS256 signer for the secret, or nil when no secret is
// configured and the API stays open.
func New(c Config) *jwtauth.JWTAuth {
	if c.Secret == "" {
		return nil
	}
	return jwtauth.New(signingAlg, []byte(c.Secret), nil)
}

// VerifyToken checks the signature and expiry and returns the operator the
// token was issued to.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	if t.Subject() == "" {
		return "", ErrNoSubject
	}
	return t.Subject(), nil
}

// NewToken issues a token for an operator of the console.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, operator string) (string, error) {
	if operator == "" {
		return "", ErrNoSubject
	}
	now := time.Now()
	claims := map[string]any{
		"sub": operator,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return ts, nil
}
