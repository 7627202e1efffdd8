package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hushplay/internal/captions"
	"hushplay/internal/intervals"
	"hushplay/internal/logging"
	"hushplay/internal/muteengine"
	"hushplay/internal/prefs"
	"hushplay/internal/progress"
	"hushplay/internal/services"
	"hushplay/internal/services/transcription"
	"hushplay/internal/session"
	"hushplay/internal/timeline"
	"hushplay/internal/transcript"
)

// OnFilterTrigger runs one filtering attempt for a video, blocking until the
// filter is active or the session reaches a terminal state. Hosts typically
// call it from a goroutine; all UI effects flow through OnStatus.
//
// Triggering while a session for the same video is already working or
// actively filtering is a no-op.
func (o *Orchestrator) OnFilterTrigger(ctx context.Context, videoID string) error {
	o.mu.Lock()
	if cur := o.current; cur != nil && cur.VideoID == videoID {
		if cur.Status.IsWorking() || cur.Status == session.StatusFiltering || cur.Status == session.StatusPaused {
			o.mu.Unlock()
			o.logger.Debug("trigger ignored, session already live",
				logging.String(logging.FieldVideoID, videoID),
				logging.String(logging.FieldState, string(cur.Status)),
			)
			return nil
		}
	}
	// A new session supersedes whatever came before it. Bumping the epoch
	// here means in-flight work for the old session fails its next stale
	// check instead of mutating the new session's state.
	o.epoch++
	epoch := o.epoch
	old := o.current
	engine, censor, renderer, animator := o.engine, o.censor, o.renderer, o.animator
	o.engine, o.censor, o.renderer, o.animator = nil, nil, nil, nil
	sess := session.New(videoID, epoch)
	o.current = sess
	userPrefs := o.prefs
	o.sampler.Reset()
	o.mu.Unlock()

	teardown(engine, censor, renderer, animator)
	if old != nil && !old.Status.IsTerminal() {
		o.logger.Info("session superseded by new trigger",
			logging.String(logging.FieldVideoID, old.VideoID),
			logging.String(logging.FieldSessionID, old.ID),
		)
	}

	o.logger.Info("filter triggered",
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldSessionID, sess.ID),
		logging.Uint64(logging.FieldEpoch, epoch),
	)

	// Cache hit bypasses the network and the confirmation prompt entirely.
	if tr, ok := o.cachedTranscript(ctx, videoID); ok {
		return o.activate(epoch, tr, userPrefs)
	}

	if !o.confirmStart(videoID) {
		o.mu.Lock()
		if o.epoch == epoch && o.current == sess {
			o.current = nil
		}
		o.mu.Unlock()
		o.logger.Info("filter declined by user",
			logging.String(logging.FieldVideoID, videoID),
		)
		return nil
	}

	tr, err := o.acquireTranscript(ctx, epoch, videoID, userPrefs)
	if err != nil {
		return o.fail(epoch, err)
	}
	if o.stale(epoch) {
		return nil
	}

	if o.store != nil {
		if saveErr := o.store.SaveTranscript(ctx, tr); saveErr != nil {
			o.logger.Warn("transcript cache write failed", logging.Error(saveErr))
		}
	}
	return o.activate(epoch, tr, userPrefs)
}

func (o *Orchestrator) cachedTranscript(ctx context.Context, videoID string) (*transcript.Transcript, bool) {
	if o.store == nil {
		return nil, false
	}
	tr, ok, err := o.store.GetTranscript(ctx, videoID)
	if err != nil {
		o.logger.Warn("transcript cache read failed", logging.Error(err))
		return nil, false
	}
	if ok {
		o.logger.Info("transcript cache hit",
			logging.String(logging.FieldVideoID, videoID),
			logging.Int("word_count", len(tr.Words)),
		)
	}
	return tr, ok
}

// confirmStart pauses playback while the user decides whether to spend
// credits, then resumes it. A nil confirm func auto-approves.
func (o *Orchestrator) confirmStart(videoID string) bool {
	if o.confirm == nil {
		return true
	}
	media, ok := o.adapter.Media()
	if ok {
		_ = media.Pause()
	}
	approved := o.confirm(videoID)
	if ok {
		_ = media.Play()
	}
	return approved
}

// acquireTranscript drives the collaborator from request through polling to
// a finished transcript. Every suspension point re-checks the epoch.
func (o *Orchestrator) acquireTranscript(ctx context.Context, epoch uint64, videoID string, p prefs.Preferences) (*transcript.Transcript, error) {
	o.setStatus(epoch, session.StatusConnecting)
	animator := o.startAnimator(epoch)

	start, err := o.client.StartFilter(ctx, videoID, p.Mode, p.Blacklist)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "transcription", "start_filter", "", err)
	}
	if o.stale(epoch) {
		return nil, services.ErrStale
	}

	switch start.Status {
	case transcription.StatusCompleted:
		if start.Transcript == nil {
			return nil, services.Wrap(services.ErrValidation, "transcription", "start_filter", "completed without transcript", nil)
		}
		return start.Transcript, nil
	case transcription.StatusFailed:
		return nil, o.collaboratorError("start_filter", start.ErrorCode)
	case transcription.StatusProcessing:
		if start.JobID == "" {
			return nil, services.Wrap(services.ErrValidation, "transcription", "start_filter", "processing without job id", nil)
		}
	default:
		return nil, services.Wrap(services.ErrValidation, "transcription", "start_filter",
			fmt.Sprintf("unknown status %q", start.Status), nil)
	}

	return o.pollJob(ctx, epoch, start.JobID, animator)
}

// pollJob polls the collaborator until the job finishes or the attempt
// ceiling is hit.
func (o *Orchestrator) pollJob(ctx context.Context, epoch uint64, jobID string, animator *progress.Animator) (*transcript.Transcript, error) {
	interval := time.Duration(o.cfg.Polling.IntervalSeconds) * time.Second
	maxAttempts := o.cfg.Polling.MaxAttempts

	o.logger.Info("polling filter job",
		logging.String(logging.FieldJobID, jobID),
		logging.Uint64(logging.FieldEpoch, epoch),
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := o.sleep(ctx, interval); err != nil {
			return nil, services.Wrap(services.ErrTransport, "transcription", "poll", "cancelled", err)
		}
		if o.stale(epoch) {
			return nil, services.ErrStale
		}

		res, err := o.client.CheckJob(ctx, jobID)
		if err != nil {
			return nil, services.Wrap(services.ErrTransport, "transcription", "poll", "", err)
		}
		if o.stale(epoch) {
			return nil, services.ErrStale
		}

		switch res.Status {
		case transcription.StatusCompleted:
			if res.Transcript == nil {
				return nil, services.Wrap(services.ErrValidation, "transcription", "poll", "completed without transcript", nil)
			}
			return res.Transcript, nil
		case transcription.StatusFailed:
			return nil, o.collaboratorError("poll", res.ErrorCode)
		}

		o.advancePhase(epoch, res, animator)
	}
	return nil, services.Wrap(services.ErrTimeout, "transcription", "poll",
		fmt.Sprintf("job %s not finished after %d attempts", jobID, maxAttempts), nil)
}

// advancePhase maps a poll response onto the session state machine and the
// display progress band for its phase.
func (o *Orchestrator) advancePhase(epoch uint64, res transcription.JobResult, animator *progress.Animator) {
	var status session.Status
	switch res.Phase {
	case transcription.PhaseDownloading:
		status = session.StatusDownloading
	case transcription.PhaseTranscribing:
		status = session.StatusTranscribing
	default:
		status = session.StatusProcessing
	}
	o.setStatus(epoch, status)

	target := o.rescale(res.Phase, res.Progress)
	if animator != nil {
		animator.SetTarget(target)
	}

	o.mu.Lock()
	shouldLog := o.sampler.ShouldLog(res.Progress, string(res.Phase))
	o.mu.Unlock()
	if shouldLog {
		o.logger.Info("job progress",
			logging.String(logging.FieldProgressPhase, string(res.Phase)),
			logging.Float64(logging.FieldProgressPercent, res.Progress),
			logging.Uint64(logging.FieldEpoch, epoch),
		)
	}
}

// rescale converts a phase-local 0-100 percentage into the overall display
// band configured for that phase.
func (o *Orchestrator) rescale(phase transcription.Phase, pct float64) float64 {
	p := o.cfg.Progress
	switch phase {
	case transcription.PhaseDownloading:
		return band(pct, p.DownloadBandLow, p.DownloadBandHigh)
	case transcription.PhaseTranscribing:
		return band(pct, p.TranscribeBandLow, p.TranscribeBandHigh)
	default:
		return p.TranscribeBandHigh
	}
}

func band(pct, low, high float64) float64 {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return low + pct/100*(high-low)
}

func (o *Orchestrator) collaboratorError(operation string, code transcription.ErrorCode) error {
	o.logger.Warn("collaborator reported failure",
		logging.String("operation", operation),
		logging.String(logging.FieldErrorCode, string(code)),
	)
	switch code {
	case transcription.ErrorCodeAgeRestricted:
		return services.Wrap(services.ErrRestricted, "transcription", operation, string(code), nil)
	case transcription.ErrorCodeInsufficientCredits:
		return services.Wrap(services.ErrQuota, "transcription", operation, string(code), nil)
	default:
		return services.Wrap(services.ErrTransport, "transcription", operation, string(code), nil)
	}
}

// activate derives intervals and brings up the active-filter components,
// completing the progress animation first so the bar lands on 100 before the
// overlay goes away.
func (o *Orchestrator) activate(epoch uint64, tr *transcript.Transcript, p prefs.Preferences) error {
	if o.stale(epoch) {
		return nil
	}
	o.setStatus(epoch, session.StatusProcessing)

	set := intervals.Derive(tr, p, o.lex)

	o.mu.Lock()
	animator := o.animator
	o.mu.Unlock()
	if animator != nil {
		animator.Complete()
		settle := time.Duration(o.cfg.Polling.SettleDelayMS) * time.Millisecond
		if err := o.sleep(context.Background(), settle); err == nil && o.stale(epoch) {
			return nil
		}
		animator.Stop()
	}

	media, ok := o.adapter.Media()
	if !ok {
		return o.fail(epoch, services.Wrap(services.ErrValidation, "player", "activate", "media element unavailable", nil))
	}

	engine := muteengine.New(muteengine.Options{
		PositionTick: time.Duration(o.cfg.Engine.PositionTickMS) * time.Millisecond,
		Logger:       o.logger,
	})
	engine.Initialize(media, set, p.Mode)

	censor := captions.New(captions.Options{
		Lexicon:     o.lex,
		Preferences: p,
		Marker:      o.cfg.Captions.CensorMarker,
		Logger:      o.logger,
	})
	renderer := timeline.New(timeline.Options{
		Bar:             o.adapter.ProgressBar(),
		Media:           media,
		MinWidthPct:     o.cfg.Engine.MinMarkerWidthPct,
		SeekBackSeconds: o.cfg.Engine.SeekBackSeconds,
		Logger:          o.logger,
	})

	o.mu.Lock()
	if o.epoch != epoch || o.current == nil {
		o.mu.Unlock()
		engine.Stop()
		renderer.Destroy()
		return nil
	}
	sess := o.current
	sess.Transcript = tr
	sess.MuteIntervals = set
	sess.LastIntervalCount = len(set)
	o.engine = engine
	o.censor = censor
	o.renderer = renderer
	o.animator = nil
	o.mu.Unlock()

	engine.Start()
	if err := censor.Start(o.adapter.Captions()); err != nil {
		o.logger.Warn("caption observer attach failed", logging.Error(err))
	}
	renderer.Show(set)

	// The session only reads as filtering once the engines are actually up.
	o.mu.Lock()
	if o.epoch != epoch || o.current == nil {
		o.mu.Unlock()
		teardown(engine, censor, renderer, nil)
		return nil
	}
	sess.Transition(session.StatusFiltering)
	sess.Progress = 100
	o.mu.Unlock()

	o.logger.Info("filter active",
		logging.String(logging.FieldVideoID, sess.VideoID),
		logging.Int(logging.FieldIntervalCount, len(set)),
	)
	o.publish(epoch)
	return nil
}

// startAnimator creates and starts the display-progress animator for a
// network-bound session.
func (o *Orchestrator) startAnimator(epoch uint64) *progress.Animator {
	cfg := o.cfg.Progress
	animator := progress.New(progress.Options{
		SafeCap:      cfg.SafeCap,
		Tick:         time.Duration(cfg.TickMS) * time.Millisecond,
		MinIncrement: cfg.MinIncrement,
		MaxIncrement: cfg.MaxIncrement,
		OnUpdate: func(display float64) {
			o.mu.Lock()
			if o.epoch != epoch || o.current == nil {
				o.mu.Unlock()
				return
			}
			o.current.Progress = display
			o.mu.Unlock()
			o.publish(epoch)
		},
	})
	animator.Start()
	animator.SetTarget(o.cfg.Progress.DownloadBandLow)

	o.mu.Lock()
	o.animator = animator
	o.mu.Unlock()
	return animator
}

// setStatus advances the session state machine, dropping the update when the
// epoch is stale or the transition is not legal.
func (o *Orchestrator) setStatus(epoch uint64, status session.Status) {
	o.mu.Lock()
	if o.epoch != epoch || o.current == nil {
		o.mu.Unlock()
		return
	}
	if !o.current.Transition(status) {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	o.publish(epoch)
}

// fail records a terminal state, tears down any partial setup, and makes
// sure playback keeps going. Stale errors are dropped silently.
func (o *Orchestrator) fail(epoch uint64, err error) error {
	if errors.Is(err, services.ErrStale) || o.stale(epoch) {
		return nil
	}

	status := services.SessionStateFor(err)
	message := services.UserMessage(err)

	o.mu.Lock()
	sess := o.current
	engine, censor, renderer, animator := o.engine, o.censor, o.renderer, o.animator
	o.engine, o.censor, o.renderer, o.animator = nil, nil, nil, nil
	if sess != nil {
		sess.Fail(status, message)
	}
	o.mu.Unlock()

	teardown(engine, censor, renderer, animator)

	// Fail open: filtering trouble must never leave the video paused or
	// muted.
	if media, ok := o.adapter.Media(); ok {
		_ = media.SetMuted(false)
		_ = media.Play()
	}

	o.logger.Error("filter session failed",
		logging.String(logging.FieldState, string(status)),
		logging.String(logging.FieldErrorHint, message),
		logging.Error(err),
	)
	o.publish(epoch)
	return err
}
