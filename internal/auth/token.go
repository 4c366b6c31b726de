package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mrlokans/orgauth/internal/config"
)

// DefaultTokenTTL is used when the configuration does not set a lifetime.
const DefaultTokenTTL = 30 * time.Minute

var signingMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

var (
	ErrSecretKeyRequired    = errors.New("token secret key is required")
	ErrUnsupportedAlgorithm = errors.New("unsupported token signing algorithm")
)

// Claims is the payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService builds a TokenService from the auth configuration.
func NewTokenService(cfg config.Auth) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrSecretKeyRequired
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := signingMethods[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenService{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// TTL returns the default token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the subject. A non-positive ttl uses the default.
func (s *TokenService) Issue(subjectID, email string, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("token subject is required")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry. Every failure is
// reported as ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
