package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is what an access token carries.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	Scopes    []string
	ExpiresAt time.Time
}

type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email string, scopes []string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

type jwtClaims struct {
	Email  string   `json:"email,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  kernel.Clock
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret, issuer string, ttl time.Duration, clock kernel.Clock) *JWTService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  clock,
	}
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email string, scopes []string) (string, error) {
	if userID.IsEmpty() {
		return "", ErrTokenIssueFailed().WithDetail("reason", "empty user id")
	}
	now := s.clock.Now()
	claims := jwtClaims{
		Email:  email,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", ErrTokenIssueFailed().WithCause(err)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(token string) (*TokenClaims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		detail := "malformed"
		if errors.Is(err, jwt.ErrTokenExpired) {
			detail = "expired"
		}
		return nil, ErrInvalidToken().WithDetail("reason", detail).WithCause(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken()
	}

	return &TokenClaims{
		UserID:    kernel.NewUserID(claims.Subject),
		Email:     claims.Email,
		Scopes:    ExpandScopes(claims.Scopes),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
