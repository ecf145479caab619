package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in Valkey to avoid collisions.
const keyPrefix = "session:"

// ValkeyStore persists sessions as JSON in Valkey (Redis-compatible)
// with automatic TTL expiry. Used when admin sessions should survive a
// process restart even though the content store does not.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewValkeyStore creates a session store backed by the given Valkey client.
func NewValkeyStore(client *redis.Client, secureCookies bool) *ValkeyStore {
	return &ValkeyStore{
		client: client,
		ttl:    DefaultTTL,
		secure: secureCookies,
	}
}

// ConnectValkey creates a Valkey client and verifies the connection
// with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Create generates a new session, stores it in Valkey, and sets the
// session cookie on the response.
func (s *ValkeyStore) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id := uuid.NewString()
	data.CreatedAt = time.Now()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	setCookie(w, id, s.ttl, s.secure)
	return id, nil
}

// Get retrieves session data from Valkey using the session id from the
// request cookie. Returns nil if no valid session exists.
func (s *ValkeyStore) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id := cookieID(r)
	if id == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *ValkeyStore) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := cookieID(r); id != "" {
		if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
			return fmt.Errorf("session destroy: %w", err)
		}
	}

	clearCookie(w)
	return nil
}
