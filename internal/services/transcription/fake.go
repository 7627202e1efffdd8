package transcription

import (
	"context"
	"sync"

	"hushplay/internal/prefs"
	"hushplay/internal/transcript"
)

// Fake is a scripted in-memory Client for tests.
type Fake struct {
	mu sync.Mutex

	StartResult StartResult
	StartErr    error
	// JobResults are returned by CheckJob in order; the last entry repeats
	// once the script is exhausted.
	JobResults []JobResult
	CheckErr   error

	StartCalls int
	CheckCalls int
	LastVideo  string
	LastMode   prefs.Mode
	LastWords  []string
	LastJobID  string

	jobIndex int
}

// NewFakeImmediate scripts a collaborator that already holds the transcript.
func NewFakeImmediate(tr *transcript.Transcript) *Fake {
	return &Fake{StartResult: StartResult{Status: StatusCompleted, Transcript: tr}}
}

// NewFakeJob scripts an asynchronous job that walks through steps on
// successive polls.
func NewFakeJob(jobID string, steps ...JobResult) *Fake {
	return &Fake{
		StartResult: StartResult{Status: StatusProcessing, JobID: jobID},
		JobResults:  steps,
	}
}

func (f *Fake) StartFilter(ctx context.Context, videoID string, mode prefs.Mode, customWords []string) (StartResult, error) {
	if err := ctx.Err(); err != nil {
		return StartResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StartCalls++
	f.LastVideo = videoID
	f.LastMode = mode
	f.LastWords = append([]string(nil), customWords...)
	if f.StartErr != nil {
		return StartResult{}, f.StartErr
	}
	return f.StartResult, nil
}

func (f *Fake) CheckJob(ctx context.Context, jobID string) (JobResult, error) {
	if err := ctx.Err(); err != nil {
		return JobResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckCalls++
	f.LastJobID = jobID
	if f.CheckErr != nil {
		return JobResult{}, f.CheckErr
	}
	if len(f.JobResults) == 0 {
		return JobResult{Status: StatusProcessing, Phase: PhaseDownloading}, nil
	}
	res := f.JobResults[f.jobIndex]
	if f.jobIndex < len(f.JobResults)-1 {
		f.jobIndex++
	}
	return res, nil
}
