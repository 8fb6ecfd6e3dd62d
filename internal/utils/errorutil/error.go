package errorutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// WrapError wraps an error with additional context
func WrapError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// HandleContextError logs err, reporting the context error instead when ctx is already done.
func HandleContextError(log zerolog.Logger, ctx context.Context, err error, timeoutMsg, errorMsg string) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		log.Error().Err(ctxErr).Msg(timeoutMsg)
		return WrapError(ctxErr, timeoutMsg)
	}
	log.Error().Err(err).Msg(errorMsg)
	return WrapError(err, errorMsg)
}
