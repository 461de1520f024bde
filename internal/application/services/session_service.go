package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

// Claims is the session token issued by the external auth provider
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService verifies session tokens and turns them into viewers
type SessionService struct {
	cfg    config.SessionConfig
	logger *logger.Logger
}

func NewSessionService(cfg config.SessionConfig, logger *logger.Logger) *SessionService {
	return &SessionService{
		cfg:    cfg,
		logger: logger.WithComponent("session_service"),
	}
}

// ValidateToken checks signature, expiry and issuer and returns the viewer
// the token was issued for.
func (s *SessionService) ValidateToken(tokenString string) (entities.Viewer, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return entities.Viewer{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return entities.Viewer{}, fmt.Errorf("invalid token claims")
	}

	role, ok := entities.ParseUserRole(claims.Role)
	if !ok {
		return entities.Viewer{}, fmt.Errorf("invalid token role %q", claims.Role)
	}
	if claims.UserID == "" {
		return entities.Viewer{}, fmt.Errorf("token has no user id")
	}

	return entities.Viewer{ID: entities.ID(claims.UserID), Name: claims.Name, Role: role}, nil
}

// IssueToken signs a session token for viewer. The dashboard never issues
// production sessions; this serves local development and tests.
func (s *SessionService) IssueToken(viewer entities.Viewer, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: viewer.ID.String(),
		Name:   viewer.Name,
		Email:  email,
		Role:   string(viewer.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   viewer.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
