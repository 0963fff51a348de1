package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeExpirePlaceholder = "reservation:expire-placeholder"

// ExpirePlaceholderPayload identifies the reservation whose hold should be released.
type ExpirePlaceholderPayload struct {
	Code string `json:"code"`
}

// NewExpirePlaceholderTask builds a task that fires at fireAt. The task ID is derived
// from the code so it can be cancelled after checkout.
func NewExpirePlaceholderTask(code string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpirePlaceholderPayload{Code: code})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExpirePlaceholder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.TaskID(expireTaskID(code)), asynq.MaxRetry(3)}

	return task, opts, nil
}

// ParseExpirePlaceholder decodes the payload of an expiry task.
func ParseExpirePlaceholder(task *asynq.Task) (ExpirePlaceholderPayload, error) {
	var p ExpirePlaceholderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeExpirePlaceholder, err)
	}
	if p.Code == "" {
		return p, fmt.Errorf("invalid %s payload: missing code", TypeExpirePlaceholder)
	}
	return p, nil
}

func expireTaskID(code string) string {
	return "expire:" + code
}

// Scheduler enqueues delayed reservation housekeeping.
type Scheduler interface {
	SchedulePlaceholderExpiry(ctx context.Context, code string, at time.Time) error
	CancelPlaceholderExpiry(ctx context.Context, code string) error
}

// AsynqScheduler enqueues tasks on the asynq default queue.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func NewAsynqScheduler(opt asynq.RedisConnOpt) *AsynqScheduler {
	return &AsynqScheduler{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
	}
}

func (s *AsynqScheduler) SchedulePlaceholderExpiry(ctx context.Context, code string, at time.Time) error {
	task, opts, err := NewExpirePlaceholderTask(code, at)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}

func (s *AsynqScheduler) CancelPlaceholderExpiry(_ context.Context, code string) error {
	err := s.inspector.DeleteTask("default", expireTaskID(code))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}

func (s *AsynqScheduler) Close() error {
	if err := s.inspector.Close(); err != nil {
		return err
	}
	return s.client.Close()
}

// NoopScheduler drops every task. Used when no queue is configured.
type NoopScheduler struct{}

func (NoopScheduler) SchedulePlaceholderExpiry(context.Context, string, time.Time) error { return nil }
func (NoopScheduler) CancelPlaceholderExpiry(context.Context, string) error             { return nil }
