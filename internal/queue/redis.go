package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// popTimeout bounds each blocking pop so the consumer loop can observe
// context cancellation even on quiet queues.
const popTimeout = 5 * time.Second

// Redis is a Redis-list backed queue. Jobs are JSON envelopes pushed with
// LPUSH and popped with BRPOP, giving per-queue FIFO ordering.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a queue on the given client. The queue name becomes part
// of the Redis key.
func NewRedis(client *redis.Client, name string) *Redis {
	if name == "" {
		name = DefaultQueue
	}
	return &Redis{client: client, key: "queue:" + name}
}

// Enqueue appends a named job with its payload.
func (q *Redis) Enqueue(ctx context.Context, name string, payload Payload) error {
	job := Job{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("enqueueing job %s: %w", name, err)
	}
	return nil
}

// Next pops the oldest job. It returns (nil, nil) when the poll times out
// with no job available.
func (q *Redis) Next(ctx context.Context) (*Job, error) {
	res, err := q.client.BRPop(ctx, popTimeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	// BRPOP returns [key, value].
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshaling job: %w", err)
	}
	return &job, nil
}
