package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"GminaGolang/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is the session lifetime measured from last activity. Every Set
// refreshes it; the dialog core never sees expiry, it just gets an absent
// context on the next Get.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "gmina:session:"

// IStore persists session context snapshots between events. Get/Set of the
// same session id must not interleave lost updates; both implementations here
// write the whole snapshot atomically.
type IStore interface {
	Get(ctx context.Context, sessionID string) (entity.SessionContext, bool, error)
	Set(ctx context.Context, sessionID string, sctx entity.SessionContext) error
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func New() IStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisStore{client: client, ttl: DefaultTTL}
}

func (r *redisStore) Get(ctx context.Context, sessionID string) (entity.SessionContext, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return entity.SessionContext{}, false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session %s: %v", sessionID, err))
		return entity.SessionContext{}, false, err
	}

	var sctx entity.SessionContext
	if err := jsoniter.UnmarshalFromString(val, &sctx); err != nil {
		logrus.Error(fmt.Sprintf("Error decoding session %s: %v", sessionID, err))
		return entity.SessionContext{}, false, err
	}

	return sctx, true, nil
}

func (r *redisStore) Set(ctx context.Context, sessionID string, sctx entity.SessionContext) error {
	payload, err := jsoniter.MarshalToString(sctx)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, keyPrefix+sessionID, payload, r.ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting session %s: %v", sessionID, err))
		return err
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.client.Del(ctx, keyPrefix+sessionID).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", sessionID, err))
		return err
	}
	return nil
}

// NewMemory returns an in-process store used by tests and local development
// when no Redis is configured.
func NewMemory() IStore {
	return &memoryStore{contexts: make(map[string]entity.SessionContext)}
}

type memoryStore struct {
	mu       sync.RWMutex
	contexts map[string]entity.SessionContext
}

func (m *memoryStore) Get(_ context.Context, sessionID string) (entity.SessionContext, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sctx, ok := m.contexts[sessionID]
	return sctx, ok, nil
}

func (m *memoryStore) Set(_ context.Context, sessionID string, sctx entity.SessionContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts[sessionID] = sctx
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, sessionID)
	return nil
}
