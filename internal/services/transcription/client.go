// Package transcription defines the contract with the background
// transcription collaborator. Wire protocol detail lives with the host; the
// core only consumes these request/poll shapes.
package transcription

import (
	"context"

	"hushplay/internal/prefs"
	"hushplay/internal/transcript"
)

// Status is the collaborator-reported state of a filtering request.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

// Phase identifies the processing sub-phase a job is in; each phase reports
// its own 0-100 progress.
type Phase string

const (
	PhaseDownloading  Phase = "downloading"
	PhaseTranscribing Phase = "transcribing"
	PhaseProcessing   Phase = "processing"
)

// ErrorCode classifies terminal collaborator failures the orchestrator must
// special-case.
type ErrorCode string

const (
	// ErrorCodeAgeRestricted marks content that can never be processed.
	ErrorCodeAgeRestricted ErrorCode = "age_restricted"
	// ErrorCodeInsufficientCredits marks quota exhaustion.
	ErrorCodeInsufficientCredits ErrorCode = "insufficient_credits"
)

// StartResult is the response to a filtering request.
type StartResult struct {
	Status Status
	// Transcript is set when the backend already has the video analyzed.
	Transcript *transcript.Transcript
	// JobID is set when processing continues asynchronously.
	JobID     string
	ErrorCode ErrorCode
}

// JobResult is one poll response for an asynchronous job.
type JobResult struct {
	Status Status
	Phase  Phase
	// Progress is the 0-100 completion of the current phase.
	Progress   float64
	Transcript *transcript.Transcript
	ErrorCode  ErrorCode
}

// Client is the background collaborator the orchestrator talks to.
type Client interface {
	StartFilter(ctx context.Context, videoID string, mode prefs.Mode, customWords []string) (StartResult, error)
	CheckJob(ctx context.Context, jobID string) (JobResult, error)
}
