// Package transcript models the word-level transcript produced by the
// transcription collaborator and cached locally per video.
package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Word is a single transcribed word with its spoken time range in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the ordered word list for one video.
type Transcript struct {
	VideoID string `json:"video_id"`
	Words   []Word `json:"words"`
}

// Duration returns the end time of the last word, in seconds.
func (t *Transcript) Duration() float64 {
	if t == nil || len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].End
}

// Marshal encodes the transcript for cache storage.
func (t *Transcript) Marshal() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(data), nil
}

// Unmarshal decodes a transcript from its cache representation.
func Unmarshal(raw string) (*Transcript, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("unmarshal transcript: empty payload")
	}
	var t Transcript
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return &t, nil
}

// Validate checks word ordering and time-range sanity.
func (t *Transcript) Validate() error {
	if t == nil {
		return fmt.Errorf("transcript: nil")
	}
	prev := -1.0
	for i, word := range t.Words {
		if strings.TrimSpace(word.Text) == "" {
			return fmt.Errorf("transcript: word %d has empty text", i)
		}
		if word.End <= word.Start {
			return fmt.Errorf("transcript: word %d (%q) has end <= start", i, word.Text)
		}
		if word.Start < prev {
			return fmt.Errorf("transcript: word %d (%q) is out of order", i, word.Text)
		}
		prev = word.Start
	}
	return nil
}
