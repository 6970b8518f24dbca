// Package worker is the long-running consumer of the email job queue. It
// runs as its own process, separate from the HTTP server, and talks to it
// only through the queue.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guiaemprende/backend/internal/queue"
)

// Sender dispatches the three email kinds. Satisfied by the email gateway.
type Sender interface {
	SendVerification(ctx context.Context, to, nombre string) error
	SendFile(ctx context.Context, to, nombre, filePath string) error
	SendResendConfirmation(ctx context.Context, to, nombre string) error
}

// Worker consumes jobs one at a time and dispatches them by name.
type Worker struct {
	queue  queue.Consumer
	sender Sender
}

// New creates a worker on the given queue and sender.
func New(q queue.Consumer, sender Sender) *Worker {
	return &Worker{queue: q, sender: sender}
}

// Run processes jobs until ctx is cancelled. A failed job is logged and the
// loop moves on; no compensating action is taken against the user record.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("email worker started")

	for {
		job, err := w.queue.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("email worker stopped")
				return nil
			}
			slog.Error("fetching next job failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := w.process(ctx, job); err != nil {
			slog.Error("job failed", "id", job.ID, "name", job.Name, "error", err)
			continue
		}
		slog.Info("job completed", "id", job.ID, "name", job.Name)
	}
}

// process dispatches one job to the email gateway.
func (w *Worker) process(ctx context.Context, job *queue.Job) error {
	p := job.Payload

	switch job.Name {
	case queue.JobSendVerificationEmail:
		return w.sender.SendVerification(ctx, p.Email, p.Nombre)
	case queue.JobSendFileEmail:
		return w.sender.SendFile(ctx, p.Email, p.Nombre, p.FilePath)
	case queue.JobAskForFileEmail:
		return w.sender.SendResendConfirmation(ctx, p.Email, p.Nombre)
	default:
		return fmt.Errorf("unknown job name: %s", job.Name)
	}
}
