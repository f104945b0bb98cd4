package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nchci/hciflow/pkg/models"
	redis "github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "hciflow:session:"
	workflowKeyPrefix = "hciflow:workflow:"
)

// Redis stores journey state in Redis with a native TTL, for deployments
// that run more than one API instance.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis connects using a redis:// URL. A zero ttl stores entries without
// expiry.
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Redis{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (r *Redis) put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return r.client.Set(ctx, key, payload, r.ttl).Err()
}

func (r *Redis) get(ctx context.Context, key string, target any) error {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("fetch %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func (r *Redis) PutSession(ctx context.Context, userID string, session *models.Session) error {
	return r.put(ctx, sessionKeyPrefix+userID, session)
}

func (r *Redis) Session(ctx context.Context, userID string) (*models.Session, error) {
	var session models.Session
	if err := r.get(ctx, sessionKeyPrefix+userID, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *Redis) PutActiveWorkflow(ctx context.Context, userID string, workflow *models.ActiveWorkflow) error {
	return r.put(ctx, workflowKeyPrefix+userID, workflow)
}

func (r *Redis) ActiveWorkflow(ctx context.Context, userID string) (*models.ActiveWorkflow, error) {
	var workflow models.ActiveWorkflow
	if err := r.get(ctx, workflowKeyPrefix+userID, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

func (r *Redis) DeleteJourney(ctx context.Context, userID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+userID, workflowKeyPrefix+userID).Err()
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close(_ context.Context) error {
	return r.client.Close()
}
