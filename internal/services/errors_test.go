package services

import (
	"errors"
	"testing"

	"hushplay/internal/session"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := Wrap(ErrTransport, "transcription", "start filter", "request failed", base)
	if !errors.Is(err, ErrTransport) {
		t.Error("wrapped error should match ErrTransport")
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match the underlying cause")
	}
	want := "transport error: transcription: start filter: request failed: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsToTransport(t *testing.T) {
	err := Wrap(nil, "transcription", "poll", "", nil)
	if !errors.Is(err, ErrTransport) {
		t.Error("nil marker should default to ErrTransport")
	}
}

func TestSessionStateFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want session.Status
	}{
		{"restricted", Wrap(ErrRestricted, "t", "", "", nil), session.StatusAgeRestricted},
		{"quota", Wrap(ErrQuota, "t", "", "", nil), session.StatusError},
		{"timeout", Wrap(ErrTimeout, "t", "", "", nil), session.StatusError},
		{"plain", errors.New("boom"), session.StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionStateFor(tt.err); got != tt.want {
				t.Errorf("SessionStateFor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(Wrap(ErrRestricted, "t", "", "", nil)) {
		t.Error("restricted content should not be retryable")
	}
	if !Retryable(Wrap(ErrTimeout, "t", "", "", nil)) {
		t.Error("timeouts should be retryable")
	}
	if !Retryable(Wrap(ErrQuota, "t", "", "", nil)) {
		t.Error("quota errors should be retryable after adding credits")
	}
}

func TestUserMessageDistinguishesQuota(t *testing.T) {
	quota := UserMessage(Wrap(ErrQuota, "t", "", "", nil))
	generic := UserMessage(errors.New("boom"))
	if quota == generic {
		t.Error("quota message should differ from generic failure message")
	}
}
