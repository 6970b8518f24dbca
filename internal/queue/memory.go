package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Memory is an in-process queue with the same semantics as the Redis one.
// It backs tests and local development without a broker.
type Memory struct {
	jobs chan Job
}

// NewMemory creates an in-memory queue holding up to 256 pending jobs.
func NewMemory() *Memory {
	return &Memory{jobs: make(chan Job, 256)}
}

// Enqueue appends a named job with its payload.
func (q *Memory) Enqueue(_ context.Context, name string, payload Payload) error {
	job := Job{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.New("queue is full")
	}
}

// Next pops the oldest job, blocking until one is available or ctx is
// cancelled.
func (q *Memory) Next(ctx context.Context) (*Job, error) {
	select {
	case job := <-q.jobs:
		return &job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of pending jobs.
func (q *Memory) Len() int {
	return len(q.jobs)
}
