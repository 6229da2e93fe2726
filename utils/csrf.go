package utils

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// IssueCSRFToken mints a random token and registers it in the CSRF cache.
func IssueCSRFToken(ctx context.Context) (string, error) {
	token := uuid.New().String()
	if err := GetCSRFCacheClient().Set(ctx, CSRFTokenPrefix+token, "1", CSRFTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyCSRFToken reports whether the token was issued and is still live.
func VerifyCSRFToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := GetCSRFCacheClient().Get(ctx, CSRFTokenPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
