// Package player defines the page adapter contracts the filtering core
// consumes. The host supplies concrete implementations bound to its player
// UI; the core never touches browser or player globals directly.
package player

// MediaController is the handle to the playing media element. While an
// audio mute engine is active it is the exclusive owner of the element's
// mute state; no other component may set it directly.
type MediaController interface {
	// Position returns the current playback position in seconds. ok is
	// false when the media element has disappeared (navigation, unload).
	Position() (seconds float64, ok bool)
	// Duration returns the media duration in seconds; ok is false until
	// metadata has arrived.
	Duration() (seconds float64, ok bool)
	SetMuted(muted bool) error
	// StartBleep and StopBleep superimpose the bleep audio cue; they are
	// only used in bleep mode.
	StartBleep() error
	StopBleep() error
	Pause() error
	Play() error
	Seek(seconds float64) error
}

// CaptionSegment is a text-bearing leaf node inside the caption container.
// The ID must be stable across repeated observations of the same node so
// the censor can mark it processed.
type CaptionSegment interface {
	ID() string
	Text() string
	SetText(text string)
}

// CaptionObserver delivers caption segments as they are inserted or mutated
// in place. The returned cancel func detaches the observer.
type CaptionObserver interface {
	Observe(fn func(CaptionSegment)) (cancel func(), err error)
}

// Marker is one interval projected onto the progress bar, in percent of the
// full timeline.
type Marker struct {
	LeftPct  float64
	WidthPct float64
	Label    string
	Severity string
}

// ProgressBarHost renders interval markers over the player progress bar.
// Positions are percentage-based, so container resizes rescale without core
// involvement.
type ProgressBarHost interface {
	// SetMarkers replaces all rendered markers. onClick receives the index
	// of the clicked marker.
	SetMarkers(markers []Marker, onClick func(index int)) error
	ClearMarkers()
	// OnDurationKnown registers a callback for when the media duration
	// becomes available; it fires immediately if already known. The
	// returned cancel func unregisters the callback.
	OnDurationKnown(fn func(seconds float64)) (cancel func())
}

// Navigator reports page navigations away from the current video. The
// returned cancel func unregisters the callback.
type Navigator interface {
	OnNavigate(fn func()) (cancel func())
}

// Adapter bundles the page capabilities the core needs.
type Adapter interface {
	Media() (MediaController, bool)
	Captions() CaptionObserver
	ProgressBar() ProgressBarHost
}
