// Package timeline projects mute intervals onto the player progress bar as
// percentage-positioned markers with seek-to-instance support.
package timeline

import (
	"fmt"
	"log/slog"
	"sync"

	"hushplay/internal/intervals"
	"hushplay/internal/logging"
	"hushplay/internal/player"
)

// Options configures a Renderer.
type Options struct {
	Bar   player.ProgressBarHost
	Media player.MediaController
	// MinWidthPct keeps very short intervals visible and clickable.
	MinWidthPct float64
	// SeekBackSeconds seeks this far before the interval start on click.
	SeekBackSeconds float64
	Logger          *slog.Logger
}

// Renderer draws interval markers. Positions are percentages, so container
// resizes rescale without re-rendering; a late-arriving duration triggers
// one re-render.
type Renderer struct {
	mu sync.Mutex

	bar   player.ProgressBarHost
	media player.MediaController

	set      intervals.Set
	duration float64

	minWidthPct float64
	seekBack    float64
	logger      *slog.Logger

	cancelDuration func()
	shown          bool
}

// New constructs a renderer.
func New(opts Options) *Renderer {
	if opts.MinWidthPct <= 0 {
		opts.MinWidthPct = 0.5
	}
	return &Renderer{
		bar:         opts.Bar,
		media:       opts.Media,
		minWidthPct: opts.MinWidthPct,
		seekBack:    opts.SeekBackSeconds,
		logger:      logging.NewComponentLogger(opts.Logger, "timeline"),
	}
}

// Show renders markers for the interval set. When the media duration is not
// yet known, rendering is deferred until the host announces it.
func (r *Renderer) Show(set intervals.Set) {
	r.mu.Lock()
	r.set = set
	r.shown = true
	if r.cancelDuration == nil {
		r.cancelDuration = r.bar.OnDurationKnown(r.onDuration)
	}
	duration := r.duration
	if duration == 0 && r.media != nil {
		if known, ok := r.media.Duration(); ok {
			duration = known
			r.duration = known
		}
	}
	r.mu.Unlock()

	if duration > 0 {
		r.render()
	}
}

// Update swaps the interval set and re-renders, used when preferences
// change mid-playback.
func (r *Renderer) Update(set intervals.Set) {
	r.mu.Lock()
	shown := r.shown
	r.set = set
	r.mu.Unlock()
	if shown {
		r.render()
	}
}

// Hide removes all markers but keeps the renderer usable.
func (r *Renderer) Hide() {
	r.mu.Lock()
	r.shown = false
	r.mu.Unlock()
	r.bar.ClearMarkers()
}

// Destroy removes markers and unregisters the duration callback; the
// renderer must not leak observers past the owning session.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	cancel := r.cancelDuration
	r.cancelDuration = nil
	r.shown = false
	r.set = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.bar.ClearMarkers()
}

func (r *Renderer) onDuration(seconds float64) {
	r.mu.Lock()
	r.duration = seconds
	shown := r.shown
	r.mu.Unlock()
	if shown && seconds > 0 {
		r.render()
	}
}

func (r *Renderer) render() {
	r.mu.Lock()
	set := r.set
	duration := r.duration
	r.mu.Unlock()
	if duration <= 0 {
		return
	}

	markers := Project(set, duration, r.minWidthPct)
	if err := r.bar.SetMarkers(markers, r.onClick(set)); err != nil {
		r.logger.Warn("marker render failed", logging.Error(err))
	}
}

func (r *Renderer) onClick(set intervals.Set) func(int) {
	return func(index int) {
		if index < 0 || index >= len(set) {
			return
		}
		if r.media == nil {
			return
		}
		target := set[index].Start - r.seekBack
		if target < 0 {
			target = 0
		}
		if err := r.media.Seek(target); err != nil {
			r.logger.Warn("marker seek failed", logging.Error(err))
		}
	}
}

// Project converts intervals into percentage markers for a given duration,
// enforcing the minimum visible width and clamping to the bar.
func Project(set intervals.Set, duration, minWidthPct float64) []player.Marker {
	if duration <= 0 {
		return nil
	}
	markers := make([]player.Marker, 0, len(set))
	for _, interval := range set {
		left := interval.Start / duration * 100
		width := (interval.End - interval.Start) / duration * 100
		if width < minWidthPct {
			width = minWidthPct
		}
		if left > 100 {
			left = 100
		}
		if left+width > 100 {
			width = 100 - left
		}
		markers = append(markers, player.Marker{
			LeftPct:  left,
			WidthPct: width,
			Label:    fmt.Sprintf("%s (%.1fs)", interval.Word, interval.End-interval.Start),
			Severity: string(interval.Severity),
		})
	}
	return markers
}
