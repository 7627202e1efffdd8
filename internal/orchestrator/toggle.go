package orchestrator

import (
	"errors"

	"hushplay/internal/intervals"
	"hushplay/internal/logging"
	"hushplay/internal/prefs"
	"hushplay/internal/session"
)

// ErrNotFiltering is returned when a toggle arrives with no active filter to
// pause or resume.
var ErrNotFiltering = errors.New("no active filter session")

// ToggleFilter pauses an active filter or resumes a paused one. The derived
// intervals and transcript are retained across the toggle, so no network
// traffic happens in either direction.
func (o *Orchestrator) ToggleFilter() error {
	o.mu.Lock()
	sess := o.current
	if sess == nil {
		o.mu.Unlock()
		return ErrNotFiltering
	}
	epoch := o.epoch
	engine, censor, renderer := o.engine, o.censor, o.renderer
	set := sess.MuteIntervals

	switch sess.Status {
	case session.StatusFiltering:
		sess.Transition(session.StatusPaused)
		o.mu.Unlock()
		if engine != nil {
			engine.Stop()
		}
		if censor != nil {
			censor.Stop()
		}
		if renderer != nil {
			renderer.Hide()
		}
		o.logger.Info("filter paused",
			logging.String(logging.FieldVideoID, sess.VideoID),
			logging.Int(logging.FieldIntervalCount, len(set)),
		)
		o.publish(epoch)
		return nil

	case session.StatusPaused:
		sess.Transition(session.StatusFiltering)
		o.mu.Unlock()
		if engine != nil {
			engine.Resume()
		}
		if censor != nil {
			if err := censor.Start(o.adapter.Captions()); err != nil {
				o.logger.Warn("caption observer attach failed", logging.Error(err))
			}
		}
		if renderer != nil {
			renderer.Show(set)
		}
		o.logger.Info("filter resumed",
			logging.String(logging.FieldVideoID, sess.VideoID),
			logging.Int(logging.FieldIntervalCount, len(set)),
		)
		o.publish(epoch)
		return nil

	default:
		o.mu.Unlock()
		return ErrNotFiltering
	}
}

// onPreferences applies a preference change to the live session: intervals
// are re-derived from the retained transcript and every active component is
// hot-swapped without interrupting playback.
func (o *Orchestrator) onPreferences(p prefs.Preferences) {
	o.mu.Lock()
	o.prefs = p
	sess := o.current
	if sess == nil || sess.Transcript == nil {
		o.mu.Unlock()
		return
	}
	if sess.Status != session.StatusFiltering && sess.Status != session.StatusPaused {
		o.mu.Unlock()
		return
	}
	epoch := o.epoch
	set := intervals.Derive(sess.Transcript, p, o.lex)
	sess.MuteIntervals = set
	sess.LastIntervalCount = len(set)
	engine, censor, renderer := o.engine, o.censor, o.renderer
	active := sess.Status == session.StatusFiltering
	o.mu.Unlock()

	if engine != nil {
		engine.UpdateIntervals(set)
		engine.UpdateMode(p.Mode)
	}
	if censor != nil {
		censor.UpdatePreferences(p)
	}
	if renderer != nil && active {
		renderer.Update(set)
	}

	o.logger.Info("preferences applied to live session",
		logging.String(logging.FieldVideoID, sess.VideoID),
		logging.Int(logging.FieldIntervalCount, len(set)),
	)
	o.publish(epoch)
}
