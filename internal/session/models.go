package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hushplay/internal/intervals"
	"hushplay/internal/transcript"
)

// Status represents the lifecycle of a filter session.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusConnecting    Status = "connecting"
	StatusDownloading   Status = "downloading"
	StatusTranscribing  Status = "transcribing"
	StatusProcessing    Status = "processing"
	StatusFiltering     Status = "filtering"
	StatusPaused        Status = "paused"
	StatusError         Status = "error"
	StatusAgeRestricted Status = "age-restricted"
)

var allStatuses = []Status{
	StatusIdle,
	StatusConnecting,
	StatusDownloading,
	StatusTranscribing,
	StatusProcessing,
	StatusFiltering,
	StatusPaused,
	StatusError,
	StatusAgeRestricted,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// workingStatuses are the in-flight states between a trigger and an active
// filter; a new trigger while in one of these is a no-op.
var workingStatuses = map[Status]struct{}{
	StatusConnecting:   {},
	StatusDownloading:  {},
	StatusTranscribing: {},
	StatusProcessing:   {},
}

// terminalStatuses end a session; a fresh user action creates a new session.
var terminalStatuses = map[Status]struct{}{
	StatusError:         {},
	StatusAgeRestricted: {},
}

var allowedTransitions = map[Status][]Status{
	StatusIdle:          {StatusConnecting, StatusFiltering},
	StatusConnecting:    {StatusDownloading, StatusTranscribing, StatusProcessing, StatusFiltering},
	StatusDownloading:   {StatusTranscribing, StatusProcessing, StatusFiltering},
	StatusTranscribing:  {StatusProcessing, StatusFiltering},
	StatusProcessing:    {StatusFiltering},
	StatusFiltering:     {StatusPaused},
	StatusPaused:        {StatusFiltering},
	StatusError:         {},
	StatusAgeRestricted: {},
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsWorking reports whether the status reflects an in-flight filtering
// request.
func (s Status) IsWorking() bool {
	_, ok := workingStatuses[s]
	return ok
}

// IsTerminal reports whether the status ends the session.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// CanTransition reports whether moving from s to next is a legal
// state-machine step. Terminal states are reachable from any non-terminal
// state on failure, so they are always allowed as a target.
func (s Status) CanTransition(next Status) bool {
	if next.IsTerminal() {
		return !s.IsTerminal()
	}
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Session tracks one end-to-end attempt to filter a specific video.
type Session struct {
	ID                string
	VideoID           string
	NavigationEpoch   uint64
	Status            Status
	Progress          float64
	StatusMessage     string
	Transcript        *transcript.Transcript
	MuteIntervals     intervals.Set
	LastIntervalCount int
	CreatedAt         time.Time
}

// New creates an idle session bound to a video and the navigation epoch
// active at creation time.
func New(videoID string, epoch uint64) *Session {
	return &Session{
		ID:              uuid.NewString(),
		VideoID:         videoID,
		NavigationEpoch: epoch,
		Status:          StatusIdle,
		CreatedAt:       time.Now().UTC(),
	}
}

// Transition moves the session to next when legal and reports whether the
// move happened.
func (s *Session) Transition(next Status) bool {
	if !s.Status.CanTransition(next) {
		return false
	}
	s.Status = next
	return true
}

// Fail marks the session with a terminal status and message.
func (s *Session) Fail(status Status, message string) {
	if !status.IsTerminal() {
		status = StatusError
	}
	s.Status = status
	s.StatusMessage = message
	s.Progress = 0
}
