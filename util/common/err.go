package common

import (
	"errors"
	"fmt"

	"github.com/mhsanaei/blog/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors; it returns nil when every error is nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a recovered panic under msg. It must be deferred directly.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
