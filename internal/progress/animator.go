// Package progress converts sparse, bursty server-reported progress into a
// smooth, monotonic, bounded display value. The animator is a pure state
// machine driven by ticks; the timer goroutine only calls step.
package progress

import (
	"math"
	"sync"
	"time"
)

// completionSnapThreshold is the display value at which a completed animator
// snaps to exactly 100 and stops.
const completionSnapThreshold = 99.5

// gapFactor scales the distance to the target into a per-tick increment
// before easing and clamping.
const gapFactor = 0.2

// Options tune the animator. Zero values fall back to sane defaults.
type Options struct {
	SafeCap      float64
	Tick         time.Duration
	MinIncrement float64
	MaxIncrement float64

	// OnUpdate fires with the new display value after every change.
	OnUpdate func(display float64)
	// OnComplete fires exactly once when display snaps to 100.
	OnComplete func()

	// now is injectable for deterministic tests.
	now func() time.Time
}

// Animator smooths displayed progress. Display is monotonically
// non-decreasing for the lifetime of one instance and never exceeds the
// safe cap until Complete is called.
type Animator struct {
	mu sync.Mutex

	display  float64
	target   float64
	safeCap  float64
	complete bool
	finished bool
	stopped  bool

	minIncrement float64
	maxIncrement float64
	tick         time.Duration

	lastTargetAt time.Time

	onUpdate   func(float64)
	onComplete func()
	now        func() time.Time

	stopTimer chan struct{}
}

// New constructs an animator; call Start to begin ticking.
func New(opts Options) *Animator {
	if opts.SafeCap <= 0 || opts.SafeCap >= 100 {
		opts.SafeCap = 90
	}
	if opts.Tick <= 0 {
		opts.Tick = 75 * time.Millisecond
	}
	if opts.MinIncrement <= 0 {
		opts.MinIncrement = 0.1
	}
	if opts.MaxIncrement < opts.MinIncrement {
		opts.MaxIncrement = 4
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	return &Animator{
		safeCap:      opts.SafeCap,
		minIncrement: opts.MinIncrement,
		maxIncrement: opts.MaxIncrement,
		tick:         opts.Tick,
		onUpdate:     opts.OnUpdate,
		onComplete:   opts.OnComplete,
		now:          opts.now,
	}
}

// Start resets progress to zero and begins the fixed-tick timer. Calling
// Start on a running animator restarts the timer only.
func (a *Animator) Start() {
	a.mu.Lock()
	if a.stopTimer != nil {
		a.mu.Unlock()
		return
	}
	a.display = 0
	a.target = 0
	a.complete = false
	a.finished = false
	a.stopped = false
	a.lastTargetAt = a.now()
	stop := make(chan struct{})
	a.stopTimer = stop
	tick := a.tick
	a.mu.Unlock()

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if a.step() {
					return
				}
			}
		}
	}()
}

// SetTarget records the latest server-reported progress. Targets are
// monotonic: a report lower than the current target is ignored, so
// out-of-order server responses cannot make the bar retreat. Until Complete
// is called the target is clamped to the safe cap.
func (a *Animator) SetTarget(p float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if !a.complete && p > a.safeCap {
		p = a.safeCap
	}
	if p > 100 {
		p = 100
	}
	if p <= a.target {
		return
	}
	a.target = p
	a.lastTargetAt = a.now()
}

// Complete lifts the safe cap and allows the target to reach 100. The
// animator keeps ticking until display snaps to 100, then stops itself.
func (a *Animator) Complete() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.complete = true
	a.target = 100
	a.lastTargetAt = a.now()
}

// Stop cancels the timer unconditionally; safe to call multiple times.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Animator) stopLocked() {
	a.stopped = true
	if a.stopTimer != nil {
		close(a.stopTimer)
		a.stopTimer = nil
	}
}

// Display returns the current display progress.
func (a *Animator) Display() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.display
}

// Target returns the current target progress.
func (a *Animator) Target() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target
}

// IsComplete reports whether Complete has been called.
func (a *Animator) IsComplete() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.complete
}

// step advances one tick and reports whether the animator finished.
func (a *Animator) step() bool {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return true
	}

	var update float64
	changed := false

	switch {
	case a.display < a.target:
		increment := (a.target - a.display) * gapFactor
		increment *= a.easing()
		if increment < a.minIncrement {
			increment = a.minIncrement
		}
		if increment > a.maxIncrement {
			increment = a.maxIncrement
		}
		next := a.display + increment
		if next > a.target {
			next = a.target
		}
		a.display = next
		update, changed = next, true
	case !a.complete:
		if drift := a.idleDrift(); drift > 0 {
			a.display += drift
			update, changed = a.display, true
		}
	}

	if a.complete && a.display >= completionSnapThreshold {
		a.display = 100
		a.finished = true
		a.stopLocked()
		onUpdate, onComplete := a.onUpdate, a.onComplete
		a.mu.Unlock()
		if onUpdate != nil {
			onUpdate(100)
		}
		if onComplete != nil {
			onComplete()
		}
		return true
	}

	onUpdate := a.onUpdate
	a.mu.Unlock()
	if changed && onUpdate != nil {
		onUpdate(update)
	}
	return false
}

// easing slows the advance logarithmically as display approaches the cap so
// the bar never visibly stalls but also never slams into the ceiling.
func (a *Animator) easing() float64 {
	ceiling := a.safeCap
	if a.complete {
		ceiling = 100
	}
	headroom := ceiling - a.display
	if headroom <= 0 {
		return 0
	}
	eased := math.Log1p(headroom) / math.Log1p(ceiling)
	if eased > 1 {
		eased = 1
	}
	return eased
}

// idleDrift keeps the bar creeping below the safe cap while no new target
// arrives, decaying the longer the server stays silent so a dead server
// cannot auto-complete the bar.
func (a *Animator) idleDrift() float64 {
	ceiling := a.safeCap - 1
	if a.display >= ceiling {
		return 0
	}
	idle := a.now().Sub(a.lastTargetAt).Seconds()
	decay := 1 / (1 + idle)
	drift := a.minIncrement * decay
	if a.display+drift > ceiling {
		drift = ceiling - a.display
	}
	return drift
}
