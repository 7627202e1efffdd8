// Package muteengine keeps a media element's audible state synchronized
// with playback position against an ordered mute interval list.
package muteengine

import (
	"log/slog"
	"sync"
	"time"

	"hushplay/internal/intervals"
	"hushplay/internal/logging"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
)

// Options configures an Engine.
type Options struct {
	// PositionTick is the playback-position check cadence.
	PositionTick time.Duration
	Logger       *slog.Logger
	// OnMuteStart fires when playback enters an interval.
	OnMuteStart func(intervals.Interval)
	// OnMuteEnd fires when playback exits an interval.
	OnMuteEnd func()
}

// Engine monitors playback position and toggles mute state as the position
// enters and exits intervals. Membership is evaluated fresh on every check,
// so seeks in either direction are handled without cursor state.
type Engine struct {
	mu sync.Mutex

	media player.MediaController
	set   intervals.Set
	mode  prefs.Mode

	tick        time.Duration
	logger      *slog.Logger
	onMuteStart func(intervals.Interval)
	onMuteEnd   func()

	running bool
	stopCh  chan struct{}

	suppressing bool
	current     intervals.Interval
}

// New constructs an engine; call Initialize to bind it to media.
func New(opts Options) *Engine {
	if opts.PositionTick <= 0 {
		opts.PositionTick = 50 * time.Millisecond
	}
	return &Engine{
		tick:        opts.PositionTick,
		logger:      logging.NewComponentLogger(opts.Logger, "muteengine"),
		onMuteStart: opts.OnMuteStart,
		onMuteEnd:   opts.OnMuteEnd,
	}
}

// Initialize binds the engine to a media element and interval set without
// altering audio yet.
func (e *Engine) Initialize(media player.MediaController, set intervals.Set, mode prefs.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.media = media
	e.set = set
	e.mode = mode
	e.suppressing = false
}

// Start begins monitoring playback position. It is a no-op when already
// running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running || e.media == nil {
		e.mu.Unlock()
		return
	}
	e.running = true
	stop := make(chan struct{})
	e.stopCh = stop
	tick := e.tick
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.check()
			}
		}
	}()
}

// Stop unbinds the monitor and guarantees the media is left unmuted.
// Safe to call multiple times.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
	e.running = false
	media := e.media
	wasSuppressing := e.suppressing
	e.suppressing = false
	onMuteEnd := e.onMuteEnd
	e.mu.Unlock()

	if media != nil {
		// Best effort: the media may already be gone, and fail-safe means
		// never leaving it silenced.
		_ = media.SetMuted(false)
		_ = media.StopBleep()
	}
	if wasSuppressing && onMuteEnd != nil {
		onMuteEnd()
	}
}

// Resume re-binds using the previously computed intervals without
// re-deriving them.
func (e *Engine) Resume() {
	e.Start()
	e.check()
}

// UpdateIntervals hot-swaps the interval list without interrupting
// playback; the new predicate applies immediately.
func (e *Engine) UpdateIntervals(set intervals.Set) {
	e.mu.Lock()
	e.set = set
	e.mu.Unlock()
	e.check()
}

// UpdateMode hot-swaps the filter mode; if an interval is active the
// suppression style is reapplied in place.
func (e *Engine) UpdateMode(mode prefs.Mode) {
	e.mu.Lock()
	changed := e.mode != mode
	e.mode = mode
	media := e.media
	reapply := changed && e.suppressing
	e.mu.Unlock()

	if reapply && media != nil {
		if mode == prefs.ModeBleep {
			_ = media.StartBleep()
		} else {
			_ = media.StopBleep()
		}
	}
	e.check()
}

// Running reports whether the position monitor is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Suppressing reports whether playback is currently inside an interval.
func (e *Engine) Suppressing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suppressing
}

// check evaluates interval membership at the current position once. A
// stopped engine never touches the media; Stop has already left it unmuted.
func (e *Engine) check() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	media := e.media
	set := e.set
	mode := e.mode
	wasSuppressing := e.suppressing
	current := e.current
	e.mu.Unlock()

	if media == nil {
		return
	}

	position, ok := media.Position()
	if !ok {
		// Media disappeared mid-session: fail safe to "not muted" and shut
		// the monitor down.
		e.logger.Warn("media element gone, failing safe to unmuted",
			logging.String(logging.FieldEventType, "media_vanished"),
		)
		e.Stop()
		return
	}

	interval, inside := set.ActiveAt(position)
	switch {
	case inside && !wasSuppressing:
		// Re-check under the lock so a concurrent Stop cannot be trailed
		// by a late mute.
		e.mu.Lock()
		if !e.running {
			e.mu.Unlock()
			return
		}
		e.applySuppression(media, mode)
		e.suppressing = true
		e.current = interval
		onMuteStart := e.onMuteStart
		e.mu.Unlock()
		if onMuteStart != nil {
			onMuteStart(interval)
		}
	case inside && wasSuppressing && interval != current:
		// Seek from one interval straight into another.
		e.mu.Lock()
		e.current = interval
		e.mu.Unlock()
	case !inside && wasSuppressing:
		e.liftSuppression(media)
		e.mu.Lock()
		e.suppressing = false
		e.current = intervals.Interval{}
		onMuteEnd := e.onMuteEnd
		e.mu.Unlock()
		if onMuteEnd != nil {
			onMuteEnd()
		}
	}
}

func (e *Engine) applySuppression(media player.MediaController, mode prefs.Mode) {
	if err := media.SetMuted(true); err != nil {
		e.logger.Warn("mute failed", logging.Error(err))
		return
	}
	if mode == prefs.ModeBleep {
		if err := media.StartBleep(); err != nil {
			e.logger.Warn("bleep cue failed", logging.Error(err))
		}
	}
}

func (e *Engine) liftSuppression(media player.MediaController) {
	_ = media.StopBleep()
	if err := media.SetMuted(false); err != nil {
		e.logger.Warn("unmute failed", logging.Error(err))
	}
}
