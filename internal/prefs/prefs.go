// Package prefs models user filtering preferences and broadcasts changes to
// active sessions so intervals can be re-derived without restarting
// playback.
package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"hushplay/internal/lexicon"
)

// Mode selects how an active interval is suppressed.
type Mode string

const (
	ModeMute  Mode = "mute"
	ModeBleep Mode = "bleep"
)

// ParseMode converts a string into a known Mode.
func ParseMode(value string) (Mode, bool) {
	normalized := Mode(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case ModeMute, ModeBleep:
		return normalized, true
	default:
		return "", false
	}
}

// Preferences parameterize interval derivation and caption censoring.
type Preferences struct {
	FilterMild      bool `json:"filter_mild"`
	FilterModerate  bool `json:"filter_moderate"`
	FilterSevere    bool `json:"filter_severe"`
	FilterReligious bool `json:"filter_religious"`

	// Blacklist words are censored case-insensitively regardless of
	// severity toggles; whitelist words are never censored.
	Blacklist []string `json:"blacklist"`
	Whitelist []string `json:"whitelist"`

	PaddingBeforeMS  int `json:"padding_before_ms"`
	PaddingAfterMS   int `json:"padding_after_ms"`
	MergeThresholdMS int `json:"merge_threshold_ms"`

	Mode       Mode `json:"mode"`
	AutoEnable bool `json:"auto_enable"`
}

// Default returns the out-of-box preferences: everything but mild filtered,
// mute mode, modest padding.
func Default() Preferences {
	return Preferences{
		FilterMild:       false,
		FilterModerate:   true,
		FilterSevere:     true,
		FilterReligious:  false,
		PaddingBeforeMS:  150,
		PaddingAfterMS:   200,
		MergeThresholdMS: 1000,
		Mode:             ModeMute,
	}
}

// SeverityEnabled reports whether the given tier is currently filtered.
func (p Preferences) SeverityEnabled(severity lexicon.Severity) bool {
	switch severity {
	case lexicon.SeverityMild:
		return p.FilterMild
	case lexicon.SeverityModerate:
		return p.FilterModerate
	case lexicon.SeveritySevere:
		return p.FilterSevere
	case lexicon.SeverityReligious:
		return p.FilterReligious
	default:
		return false
	}
}

// Normalize trims list entries and defaults the mode.
func (p *Preferences) Normalize() {
	p.Blacklist = normalizeList(p.Blacklist)
	p.Whitelist = normalizeList(p.Whitelist)
	if _, ok := ParseMode(string(p.Mode)); !ok {
		p.Mode = ModeMute
	} else {
		p.Mode = Mode(strings.ToLower(string(p.Mode)))
	}
	if p.PaddingBeforeMS < 0 {
		p.PaddingBeforeMS = 0
	}
	if p.PaddingAfterMS < 0 {
		p.PaddingAfterMS = 0
	}
	if p.MergeThresholdMS < 0 {
		p.MergeThresholdMS = 0
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// Marshal encodes preferences for store persistence.
func (p Preferences) Marshal() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal preferences: %w", err)
	}
	return string(data), nil
}

// Unmarshal decodes preferences from their persisted representation.
func Unmarshal(raw string) (Preferences, error) {
	var p Preferences
	if strings.TrimSpace(raw) == "" {
		return Default(), nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	p.Normalize()
	return p, nil
}
