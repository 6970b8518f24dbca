// Package queue provides the durable job queue that decouples HTTP request
// handling from email delivery. Producers append named jobs, the worker
// process consumes them one at a time.
package queue

import "context"

// DefaultQueue is the name of the email job queue.
const DefaultQueue = "emailQueue"

// Job names dispatched by the email worker.
const (
	JobSendVerificationEmail = "sendVerificationEmail"
	JobSendFileEmail         = "sendFileEmail"
	JobAskForFileEmail       = "askForFileEmail"
)

// Payload is the data attached to every email job.
type Payload struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	FilePath string `json:"filePath,omitempty"`
}

// Job is one unit of asynchronous work.
type Job struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Payload Payload `json:"payload"`
}

// Enqueuer is the producer side of the queue. Enqueue is fire-and-forget:
// it returns once the job is durably appended, not when it completes.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload Payload) error
}

// Consumer is the worker side of the queue. Next blocks until a job is
// available, the poll interval elapses (returning a nil job), or ctx is
// cancelled.
type Consumer interface {
	Next(ctx context.Context) (*Job, error)
}
