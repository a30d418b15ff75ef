package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studiodesk/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// Claims identify a server-side session. The token carries no expiry of its
// own: the session row's expires_at is the only clock that matters.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionID returns the id of the session row the token points at.
func (c *Claims) SessionID() string {
	return c.ID
}

// JWT signs and verifies session cookie values.
type JWT interface {
	SignSession(sessionID, subject string, issuedAt time.Time) (string, error)
	ParseSession(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) SignSession(sessionID, subject string, issuedAt time.Time) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidClaim
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Subject:  subject,
			Issuer:   s.config.App.Name,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.config.JWT.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *Service) ParseSession(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.SessionSecret), nil
	}, jwt.WithIssuer(s.config.App.Name))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}
