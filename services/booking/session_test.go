package booking

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A cache outage must surface as an error the handler maps to 5xx, not
// as a missing session.
func TestSessionLookupCacheOutageIsNotNotFound(t *testing.T) {
	svc := &DefaultSessionService{
		Cache: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
	}

	_, err := svc.GetSession(context.Background(), "s1", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}
