package service

import (
	"context"
	"errors"
	"time"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
)

// CallPolicy bounds every store call made by the services.
type CallPolicy struct {
	Timeout     time.Duration // per attempt
	ReadRetries int           // extra attempts for idempotent reads
	RetryDelay  time.Duration
}

func DefaultCallPolicy() CallPolicy {
	return CallPolicy{
		Timeout:     10 * time.Second,
		ReadRetries: 2,
		RetryDelay:  200 * time.Millisecond,
	}
}

// read runs an idempotent store call, retrying failures that are neither
// a missing row nor a duplicate key.
func read[T any](ctx context.Context, p CallPolicy, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= p.ReadRetries+1; attempt++ {
		v, err := call(ctx, p, op, attempt, fn)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil || attempt > p.ReadRetries {
			break
		}
		select {
		case <-ctx.Done():
			return zero, storeError(op, ctx.Err())
		case <-time.After(p.RetryDelay):
		}
	}
	return zero, lastErr
}

// write runs a mutating store call exactly once. A timeout is reported
// as a failure; the write may or may not have been applied.
func write[T any](ctx context.Context, p CallPolicy, op string, fn func(context.Context) (T, error)) (T, error) {
	return call(ctx, p, op, 1, fn)
}

// exec is write for calls that return nothing but an error.
func exec(ctx context.Context, p CallPolicy, op string, fn func(context.Context) error) error {
	_, err := write(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func call[T any](ctx context.Context, p CallPolicy, op string, attempt int, fn func(context.Context) (T, error)) (T, error) {
	callCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	logger.StoreCall(op, attempt)
	v, err := fn(callCtx)
	logger.StoreResult(op, attempt, err)
	if err != nil {
		var zero T
		return zero, storeError(op, err)
	}
	return v, nil
}

// storeError leaves sentinel errors visible to callers and wraps
// everything else as a StoreError.
func storeError(op string, err error) error {
	if !retryable(err) {
		return err
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrDuplicate)
}
