package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/tourkita/tourkita-backend/internal/database"
)

const (
	// AdminSessionDuration is 7 days
	AdminSessionDuration = 7 * 24 * time.Hour
	// AdminSessionKeyPrefix is the Redis key prefix for admin sessions
	AdminSessionKeyPrefix = "admin_session:"
	// AdminToSessionKeyPrefix is the Redis key prefix for admin->session mapping
	AdminToSessionKeyPrefix = "admin_to_session:"
)

// CreateAdminSession creates a new session for an admin and stores it in
// Redis. Any existing session for the admin is invalidated first, so the
// expiry timer resets on each signin. Returns the session token.
func CreateAdminSession(adminID uuid.UUID) (string, error) {
	_ = InvalidateAdminSessions(adminID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	ctx := context.Background()
	sessionKey := AdminSessionKeyPrefix + sessionToken
	adminToSessionKey := AdminToSessionKeyPrefix + adminID.String()

	if err := database.RedisClient.Set(ctx, sessionKey, adminID.String(), AdminSessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, adminToSessionKey, sessionToken, AdminSessionDuration).Err(); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// ValidateAdminSession checks if a session token is valid and returns the admin ID.
func ValidateAdminSession(sessionToken string) (uuid.UUID, bool, error) {
	if sessionToken == "" {
		return uuid.Nil, false, nil
	}

	ctx := context.Background()
	adminIDStr, err := database.RedisClient.Get(ctx, AdminSessionKeyPrefix+sessionToken).Result()
	if err != nil {
		return uuid.Nil, false, nil
	}

	adminID, err := uuid.Parse(adminIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return adminID, true, nil
}

// InvalidateAdminSession removes a session from Redis.
func InvalidateAdminSession(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	ctx := context.Background()
	sessionKey := AdminSessionKeyPrefix + sessionToken

	adminIDStr, err := database.RedisClient.Get(ctx, sessionKey).Result()
	if err == nil && adminIDStr != "" {
		_ = database.RedisClient.Del(ctx, AdminToSessionKeyPrefix+adminIDStr).Err()
	}

	return database.RedisClient.Del(ctx, sessionKey).Err()
}

// InvalidateAdminSessions invalidates all sessions for an admin.
func InvalidateAdminSessions(adminID uuid.UUID) error {
	ctx := context.Background()
	adminToSessionKey := AdminToSessionKeyPrefix + adminID.String()

	sessionToken, err := database.RedisClient.Get(ctx, adminToSessionKey).Result()
	if err == nil && sessionToken != "" {
		_ = database.RedisClient.Del(ctx, AdminSessionKeyPrefix+sessionToken).Err()
	}

	return database.RedisClient.Del(ctx, adminToSessionKey).Err()
}
