// Package orchestrator owns the end-to-end filtering lifecycle for one
// playing video: trigger, transcript acquisition, interval derivation, and
// the active-filter components. All work is invalidated by navigation
// through an epoch counter rather than by cancelling goroutines mid-call.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"hushplay/internal/captions"
	"hushplay/internal/config"
	"hushplay/internal/lexicon"
	"hushplay/internal/logging"
	"hushplay/internal/muteengine"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
	"hushplay/internal/progress"
	"hushplay/internal/services/transcription"
	"hushplay/internal/session"
	"hushplay/internal/store"
	"hushplay/internal/timeline"
)

// ConfirmFunc asks the user to approve starting a filtering job that will
// consume credits. It is called with playback paused; returning false
// abandons the trigger.
type ConfirmFunc func(videoID string) bool

// StatusUpdate is the UI-facing snapshot published on every visible change.
type StatusUpdate struct {
	VideoID       string
	Status        session.Status
	Progress      float64
	Message       string
	IntervalCount int
}

// Options configures an Orchestrator.
type Options struct {
	Config   *config.Config
	Store    *store.Store
	Client   transcription.Client
	Adapter  player.Adapter
	Lexicon  *lexicon.Lexicon
	Notifier *prefs.Notifier
	Logger   *slog.Logger

	// Navigator invalidates live work on page navigation when provided;
	// hosts without one call OnNavigate directly.
	Navigator player.Navigator
	// Confirm prompts before starting a paid job. nil auto-confirms.
	Confirm ConfirmFunc
	// OnStatus receives every user-visible state change.
	OnStatus func(StatusUpdate)

	// sleep is injectable for deterministic tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Orchestrator drives filter sessions. At most one session is live at a
// time; navigation or a new trigger replaces it.
type Orchestrator struct {
	cfg      *config.Config
	store    *store.Store
	client   transcription.Client
	adapter  player.Adapter
	lex      *lexicon.Lexicon
	notifier *prefs.Notifier
	logger   *slog.Logger
	confirm  ConfirmFunc
	onStatus func(StatusUpdate)
	sleep    func(ctx context.Context, d time.Duration) error

	mu          sync.Mutex
	epoch       uint64
	current     *session.Session
	prefs       prefs.Preferences
	engine      *muteengine.Engine
	censor      *captions.Censor
	renderer    *timeline.Renderer
	animator    *progress.Animator
	unsubscribe func()
	cancelNav   func()
	sampler     *logging.ProgressSampler
}

// New constructs an orchestrator, loading stored preferences and subscribing
// to preference changes.
func New(opts Options) (*Orchestrator, error) {
	if opts.Config == nil {
		return nil, errors.New("orchestrator: config is required")
	}
	if opts.Client == nil {
		return nil, errors.New("orchestrator: transcription client is required")
	}
	if opts.Adapter == nil {
		return nil, errors.New("orchestrator: player adapter is required")
	}
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.Default()
	}
	if opts.sleep == nil {
		opts.sleep = sleepCtx
	}

	o := &Orchestrator{
		cfg:      opts.Config,
		store:    opts.Store,
		client:   opts.Client,
		adapter:  opts.Adapter,
		lex:      opts.Lexicon,
		notifier: opts.Notifier,
		logger:   logging.NewComponentLogger(opts.Logger, "orchestrator"),
		confirm:  opts.Confirm,
		onStatus: opts.OnStatus,
		sleep:    opts.sleep,
		prefs:    prefs.Default(),
		sampler:  logging.NewProgressSampler(0),
	}

	if o.store != nil {
		loaded, err := o.store.LoadPreferences(context.Background())
		if err != nil {
			return nil, err
		}
		o.prefs = loaded
	}
	if o.notifier != nil {
		o.unsubscribe = o.notifier.Subscribe(o.onPreferences)
	}
	if opts.Navigator != nil {
		o.cancelNav = opts.Navigator.OnNavigate(o.OnNavigate)
	}
	return o, nil
}

// Close tears down the live session and detaches from preference updates.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	cancelNav := o.cancelNav
	o.cancelNav = nil
	o.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	if cancelNav != nil {
		cancelNav()
	}
	o.OnNavigate()
}

// OnNavigate invalidates all in-flight and active work. Any async step that
// observes a newer epoch drops its session without touching state or UI.
func (o *Orchestrator) OnNavigate() {
	o.mu.Lock()
	o.epoch++
	epoch := o.epoch
	sess := o.current
	o.current = nil
	engine, censor, renderer, animator := o.engine, o.censor, o.renderer, o.animator
	o.engine, o.censor, o.renderer, o.animator = nil, nil, nil, nil
	o.sampler.Reset()
	o.mu.Unlock()

	teardown(engine, censor, renderer, animator)
	if sess != nil {
		o.logger.Info("session invalidated by navigation",
			logging.String(logging.FieldVideoID, sess.VideoID),
			logging.String(logging.FieldSessionID, sess.ID),
			logging.Uint64(logging.FieldEpoch, epoch),
		)
	}
}

// Preferences returns the orchestrator's current preference snapshot.
func (o *Orchestrator) Preferences() prefs.Preferences {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.prefs
}

// Status returns the live session snapshot, if any.
func (o *Orchestrator) Status() (StatusUpdate, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return StatusUpdate{}, false
	}
	return o.snapshotLocked(), true
}

// stale reports whether work started at the given epoch has been invalidated
// by navigation.
func (o *Orchestrator) stale(epoch uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.epoch != epoch
}

func (o *Orchestrator) snapshotLocked() StatusUpdate {
	sess := o.current
	return StatusUpdate{
		VideoID:       sess.VideoID,
		Status:        sess.Status,
		Progress:      sess.Progress,
		Message:       sess.StatusMessage,
		IntervalCount: sess.LastIntervalCount,
	}
}

// publish emits a status update for the session owning the epoch. Stale
// epochs publish nothing.
func (o *Orchestrator) publish(epoch uint64) {
	o.mu.Lock()
	if o.epoch != epoch || o.current == nil {
		o.mu.Unlock()
		return
	}
	update := o.snapshotLocked()
	onStatus := o.onStatus
	o.mu.Unlock()
	if onStatus != nil {
		onStatus(update)
	}
}

func teardown(engine *muteengine.Engine, censor *captions.Censor, renderer *timeline.Renderer, animator *progress.Animator) {
	if animator != nil {
		animator.Stop()
	}
	if engine != nil {
		engine.Stop()
	}
	if censor != nil {
		censor.Stop()
	}
	if renderer != nil {
		renderer.Destroy()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
