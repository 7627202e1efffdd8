package services

import (
	"errors"
	"fmt"
	"strings"

	"hushplay/internal/session"
)

var (
	// ErrTransport marks network failures talking to the transcription
	// collaborator.
	ErrTransport = errors.New("transport error")
	// ErrTimeout marks a polling ceiling overrun.
	ErrTimeout = errors.New("timeout")
	// ErrRestricted marks content the backend refuses to process at all.
	ErrRestricted = errors.New("content restricted")
	// ErrQuota marks insufficient credits or quota.
	ErrQuota = errors.New("quota exhausted")
	// ErrStale marks work invalidated by navigation; it is dropped silently.
	ErrStale = errors.New("stale session")
	// ErrValidation marks malformed collaborator responses.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later state classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// SessionStateFor maps a classified error to the terminal session status the
// orchestrator should record after the failure. Stale errors carry no
// user-visible state; callers drop them before reaching here, but the
// mapping stays safe if one slips through.
func SessionStateFor(err error) session.Status {
	switch {
	case errors.Is(err, ErrRestricted):
		return session.StatusAgeRestricted
	default:
		return session.StatusError
	}
}

// Retryable reports whether a fresh user action can reasonably retry after
// the failure.
func Retryable(err error) bool {
	return !errors.Is(err, ErrRestricted)
}

// UserMessage renders the short explanation shown alongside a terminal
// state.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrRestricted):
		return "This video cannot be filtered because access to it is restricted."
	case errors.Is(err, ErrQuota):
		return "Not enough filtering credits. Add credits and try again."
	case errors.Is(err, ErrTimeout):
		return "Filtering took too long. Try again."
	default:
		return "Filtering failed. Try again."
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
