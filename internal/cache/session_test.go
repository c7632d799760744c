package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestGetSession_TransportErrorSurfaces(t *testing.T) {
	// Nothing listens here; the lookup must fail with an error instead
	// of reading as a cache miss.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := &Cache{client: client}

	session, err := c.GetSession(context.Background(), "tok-1")
	if err == nil {
		t.Fatal("expected a transport error, got nil")
	}
	if session != nil {
		t.Errorf("session = %v, want nil on transport error", session)
	}
}
