package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yigit/gradebook/internal/app/models"
)

// Session errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session expired")
)

// Principal is the authenticated identity attached to a request
type Principal struct {
	UserID   int64
	Username string
	Role     models.RoleType
}

// IsStudent reports whether the principal holds the student role
func (p Principal) IsStudent() bool { return p.Role == models.RoleStudent }

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// SessionService issues and parses the signed session tokens stored in the
// session cookie.
type SessionService struct {
	config SessionConfig
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(config SessionConfig) *SessionService {
	return &SessionService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines session token content
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TTL returns the configured session lifetime
func (s *SessionService) TTL() time.Duration {
	return s.config.TTL
}

// Issue creates a signed token for p
func (s *SessionService) Issue(p Principal) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: p.Username,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns the principal it carries
func (s *SessionService) Parse(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{
		UserID:   userID,
		Username: claims.Username,
		Role:     models.RoleType(claims.Role),
	}
	if p.Username == "" || !p.Role.Valid() {
		return Principal{}, ErrInvalidToken
	}
	return p, nil
}
