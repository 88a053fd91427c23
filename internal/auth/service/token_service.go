package service

import (
	"crypto/sha256"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// signingKeySize is 64 bytes to match the HS512 block strength.
const signingKeySize = 64

// tokenClaims is the wire representation of the token payload.
type tokenClaims struct {
	Authorities  []string `json:"authorities"`
	SessionIndex *string  `json:"sessionIndex,omitempty"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService with HMAC-SHA512 signatures. The
// signing key is derived once at construction and read-only thereafter, so no
// synchronization is needed for concurrent calls.
type tokenService struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService. The HS512 signing key is derived
// from the configured secret with HKDF-SHA256 so the raw secret never signs
// anything directly. The info string is versioned for future rotation.
func NewTokenService(secret []byte, ttl time.Duration) (TokenService, error) {
	if len(secret) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token ttl must be positive")
	}

	key, err := deriveSigningKey(secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}

	return &tokenService{
		signingKey: key,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// deriveSigningKey uses HKDF-SHA256 to derive the HS512 signing key from the
// configured secret.
func deriveSigningKey(secret []byte) ([]byte, error) {
	info := []byte("token-signing-v1")
	reader := hkdf.New(sha256.New, secret, nil, info)

	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Generate mints a signed token for the subject.
func (s *tokenService) Generate(username string, authorities []string, sessionIndex *string) (string, error) {
	if username == "" {
		return "", authDomain.ErrAssertionInvalid
	}

	now := s.now()
	claims := tokenClaims{
		Authorities:  authorities,
		SessionIndex: sessionIndex,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// parseClaims verifies the signature and decodes the payload without
// enforcing expiry. Expiry is the caller's concern; signature and payload
// shape are not negotiable.
func (s *tokenService) parseClaims(token string) (*authDomain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS512 {
				return nil, authDomain.ErrTokenInvalid
			}
			return s.signingKey, nil
		},
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrTokenInvalid, err.Error())
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, apperrors.Wrap(authDomain.ErrTokenInvalid, "missing required claims")
	}

	return &authDomain.TokenClaims{
		Subject:      claims.Subject,
		Authorities:  claims.Authorities,
		SessionIndex: claims.SessionIndex,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// Validate produces the three-way Valid/Expired/Invalid outcome. A token
// expiring at exactly now counts as expired, not valid.
func (s *tokenService) Validate(token string) authDomain.TokenOutcome {
	claims, err := s.parseClaims(token)
	if err != nil {
		return authDomain.InvalidOutcome(err.Error())
	}

	if !claims.ExpiresAt.After(s.now()) {
		return authDomain.ExpiredOutcome(claims)
	}
	return authDomain.ValidOutcome(claims)
}

// Refresh mints a new token carrying the original subject, authorities and
// session index. Expired-but-authentic tokens refresh fine; invalid ones
// never do.
func (s *tokenService) Refresh(token string) (string, error) {
	outcome := s.Validate(token)
	if outcome.IsInvalid() {
		return "", authDomain.ErrTokenInvalid
	}

	return s.Generate(outcome.Claims.Subject, outcome.Claims.Authorities, outcome.Claims.SessionIndex)
}

// ExtractUsername reads the subject without enforcing expiry.
func (s *tokenService) ExtractUsername(token string) (string, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractAuthorities reads the authorities without enforcing expiry.
func (s *tokenService) ExtractAuthorities(token string) ([]string, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, err
	}
	return claims.Authorities, nil
}

// IsExpired treats any parse failure as expired.
func (s *tokenService) IsExpired(token string) bool {
	claims, err := s.parseClaims(token)
	if err != nil {
		return true
	}
	return !claims.ExpiresAt.After(s.now())
}

// TTL returns the configured validity window.
func (s *tokenService) TTL() time.Duration {
	return s.ttl
}
