package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

func TestSession_RoundTrip(t *testing.T) {
	svc := NewSessionService(config.SessionConfig{JWTSecret: "secret", Issuer: "auth"}, logger.NewNop())

	token, err := svc.IssueToken(projectHead, "hugo@example.com", time.Hour)
	require.NoError(t, err)

	viewer, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, projectHead, viewer)
}

func TestSession_Rejects(t *testing.T) {
	svc := NewSessionService(config.SessionConfig{JWTSecret: "secret"}, logger.NewNop())
	other := NewSessionService(config.SessionConfig{JWTSecret: "other"}, logger.NewNop())

	forged, err := other.IssueToken(director, "", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(forged)
	assert.Error(t, err)

	expired, err := svc.IssueToken(director, "", -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
