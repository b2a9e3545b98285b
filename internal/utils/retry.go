package utils

import (
	"context"
	"errors"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"go.uber.org/zap"
)

// ErrWriteConflict reports that a conditional write lost a race and may be retried
var ErrWriteConflict = errors.New("write conflict")

// RetryBaseBackoff is the wait before the first retry; it doubles on every attempt
var RetryBaseBackoff = 20 * time.Millisecond

// RetryOnConflict runs operation until it succeeds, fails with an error other than
// ErrWriteConflict, or maxRetries retries are exhausted
func RetryOnConflict(ctx context.Context, maxRetries int, operation func() error) error {
	logger := logging.Logger.With(zap.String("operation", "retry_on_conflict"))

	for attempt := 0; ; attempt++ {
		err := operation()
		if err == nil || !errors.Is(err, ErrWriteConflict) {
			return err
		}

		if attempt >= maxRetries {
			logger.Error("max retries reached after write conflicts",
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			return err
		}

		backoff := time.Duration(1<<attempt) * RetryBaseBackoff
		logger.Debug("write conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
