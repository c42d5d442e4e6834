package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/carlosCACB333/bonny/config"
	"github.com/carlosCACB333/bonny/internal/domain/service"
)

const defaultSessionTTL = 24 * time.Hour

// jwtTokenService is a concrete implementation of the TokenService interface
// using the JWT standard. Tokens are additionally persisted by hash, so a
// signed token that was revoked still fails validation at the store.
type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokenService is the constructor for jwtTokenService.
func NewJWTTokenService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	ttl := defaultSessionTTL
	if cfg.Auth != nil && cfg.Auth.SessionTTL > 0 {
		ttl = cfg.Auth.SessionTTL
	}

	return &jwtTokenService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a signed session token for the account.
func (s *jwtTokenService) Issue(accountID uuid.UUID) (*service.IssuedToken, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub": accountID.String(),
		"jti": uuid.New().String(), // distinct hash per token, even within one second
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	return &service.IssuedToken{
		Token:     token,
		TokenHash: s.Hash(token),
		ExpiresAt: expiresAt,
	}, nil
}

// Validate checks the token signature and expiry, returning the account ID.
func (s *jwtTokenService) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse session token")
	}
	if !token.Valid {
		return uuid.Nil, errors.New("session token is not valid")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "session token has no subject")
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "session token subject is not a uuid")
	}

	return accountID, nil
}

// Hash derives the persistence hash of a plaintext token.
func (s *jwtTokenService) Hash(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
