package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// printFailure carries the mode a failed print ran in, so the reply can
// name what went wrong.
type printFailure struct {
	mode entities.Mode
	err  error
}

func (e *printFailure) Error() string { return string(e.mode) + ": " + e.err.Error() }
func (e *printFailure) Unwrap() error { return e.err }

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)

			text := msgInternalError
			var failure *printFailure
			if errors.As(err, &failure) {
				text = ayah.UserMessage(failure.err, failure.mode)
			}
			_ = h.send(newPlainMessage(chatID, text))
			return nil
		}
		return nil
	}
}
