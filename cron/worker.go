package cron

import (
	"context"
	"time"

	"rapstation/services/booking"
	"rapstation/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PlaceholderExpirer is the part of the booking service the worker needs.
type PlaceholderExpirer interface {
	ExpirePlaceholder(ctx context.Context, code string) (bool, error)
}

var _ PlaceholderExpirer = (*booking.DefaultBookingService)(nil)

// NewMux routes queued tasks to their handlers.
func NewMux(svc PlaceholderExpirer, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpirePlaceholder, handleExpirePlaceholder(svc, logger))
	return mux
}

func handleExpirePlaceholder(svc PlaceholderExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseExpirePlaceholder(task)
		if err != nil {
			logger.Error("[ExpiryWorker] invalid payload", zap.Error(err))
			// retrying a malformed payload never succeeds
			return asynq.SkipRetry
		}

		expired, err := svc.ExpirePlaceholder(ctx, p.Code)
		if err != nil {
			logger.Warn("[ExpiryWorker] failed to expire placeholder", zap.String("code", p.Code), zap.Error(err))
			return err
		}
		if expired {
			logger.Info("[ExpiryWorker] placeholder cancelled", zap.String("code", p.Code))
		} else {
			logger.Debug("[ExpiryWorker] placeholder already settled", zap.String("code", p.Code))
		}
		return nil
	}
}

// RunWorker blocks processing tasks until ctx is cancelled. Startup is retried with
// a growing delay.
func RunWorker(ctx context.Context, redisOpts asynq.RedisClientOpt, svc PlaceholderExpirer, logger *zap.Logger) error {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewMux(svc, logger)

	logger.Info("[ExpiryWorker] starting async worker...")
	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = srv.Start(mux); err == nil {
			break
		}
		logger.Warn("[ExpiryWorker] failed to start worker",
			zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		if attempts == maxAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts*2) * time.Second):
		}
	}

	<-ctx.Done()
	logger.Info("[ExpiryWorker] shutting down...")
	srv.Shutdown()
	return nil
}
