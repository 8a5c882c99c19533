package cmd

import (
	"errors"
	"fmt"
)

// SilentExitError carries an exit code for commands that already printed
// their findings. A failed verify sweep exits 1 this way: the per-check
// lines are the message, so Execute suppresses its usual error print.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// NewSilentExit returns a SilentExitError with the given exit code.
func NewSilentExit(code int) *SilentExitError {
	return &SilentExitError{Code: code}
}

// IsSilentExit reports whether err is (or wraps) a SilentExitError,
// returning its code when so.
func IsSilentExit(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var se *SilentExitError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
