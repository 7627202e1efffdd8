package player

import (
	"errors"
	"sync"
)

// ErrMediaGone is returned by fake controllers after the media element has
// been removed.
var ErrMediaGone = errors.New("media element gone")

// FakeMedia is an in-memory MediaController for tests.
type FakeMedia struct {
	mu sync.Mutex

	position float64
	duration float64
	hasMeta  bool
	gone     bool

	Muted    bool
	Bleeping bool
	Playing  bool

	MuteCalls  int
	SeekedTo   []float64
	PauseCalls int
	PlayCalls  int
}

// NewFakeMedia returns a playing fake with the given duration; pass 0 to
// simulate metadata not yet known.
func NewFakeMedia(duration float64) *FakeMedia {
	return &FakeMedia{duration: duration, hasMeta: duration > 0, Playing: true}
}

// SetPosition moves the playhead.
func (m *FakeMedia) SetPosition(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = seconds
}

// Vanish simulates the media element disappearing mid-session.
func (m *FakeMedia) Vanish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gone = true
}

// SetDuration simulates metadata arriving late.
func (m *FakeMedia) SetDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = seconds
	m.hasMeta = seconds > 0
}

func (m *FakeMedia) Position() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return 0, false
	}
	return m.position, true
}

func (m *FakeMedia) Duration() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone || !m.hasMeta {
		return 0, false
	}
	return m.duration, true
}

func (m *FakeMedia) SetMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.Muted = muted
	m.MuteCalls++
	return nil
}

func (m *FakeMedia) StartBleep() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.Bleeping = true
	return nil
}

func (m *FakeMedia) StopBleep() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.Bleeping = false
	return nil
}

func (m *FakeMedia) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.Playing = false
	m.PauseCalls++
	return nil
}

func (m *FakeMedia) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.Playing = true
	m.PlayCalls++
	return nil
}

func (m *FakeMedia) Seek(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone {
		return ErrMediaGone
	}
	m.position = seconds
	m.SeekedTo = append(m.SeekedTo, seconds)
	return nil
}

// FakeSegment is an in-memory caption text node.
type FakeSegment struct {
	SegID   string
	Content string
	Writes  int
}

func (s *FakeSegment) ID() string   { return s.SegID }
func (s *FakeSegment) Text() string { return s.Content }
func (s *FakeSegment) SetText(text string) {
	s.Content = text
	s.Writes++
}

// FakeCaptions is an in-memory CaptionObserver; tests push segments through
// Emit.
type FakeCaptions struct {
	mu        sync.Mutex
	callback  func(CaptionSegment)
	Observers int
	Cancels   int
}

func (c *FakeCaptions) Observe(fn func(CaptionSegment)) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = fn
	c.Observers++
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.callback = nil
		c.Cancels++
	}, nil
}

// Emit delivers a segment to the registered observer, if any.
func (c *FakeCaptions) Emit(segment CaptionSegment) {
	c.mu.Lock()
	fn := c.callback
	c.mu.Unlock()
	if fn != nil {
		fn(segment)
	}
}

// FakeProgressBar records rendered markers and simulates late duration.
type FakeProgressBar struct {
	mu         sync.Mutex
	Markers    []Marker
	onClick    func(int)
	durationFn func(float64)
	duration   float64
	SetCalls   int
	ClearCalls int
	Cancels    int
}

func (b *FakeProgressBar) SetMarkers(markers []Marker, onClick func(int)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Markers = append([]Marker(nil), markers...)
	b.onClick = onClick
	b.SetCalls++
	return nil
}

func (b *FakeProgressBar) ClearMarkers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Markers = nil
	b.onClick = nil
	b.ClearCalls++
}

func (b *FakeProgressBar) OnDurationKnown(fn func(float64)) func() {
	b.mu.Lock()
	b.durationFn = fn
	known := b.duration
	b.mu.Unlock()
	if known > 0 {
		fn(known)
	}
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.durationFn = nil
		b.Cancels++
	}
}

// AnnounceDuration simulates metadata arriving.
func (b *FakeProgressBar) AnnounceDuration(seconds float64) {
	b.mu.Lock()
	b.duration = seconds
	fn := b.durationFn
	b.mu.Unlock()
	if fn != nil {
		fn(seconds)
	}
}

// Click simulates a user clicking the rendered marker at index.
func (b *FakeProgressBar) Click(index int) {
	b.mu.Lock()
	fn := b.onClick
	b.mu.Unlock()
	if fn != nil {
		fn(index)
	}
}

// FakeNavigator is an in-memory Navigator; tests fire Navigate to simulate
// the user leaving the page.
type FakeNavigator struct {
	mu        sync.Mutex
	callbacks map[int]func()
	nextID    int
	Cancels   int
}

func (n *FakeNavigator) OnNavigate(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.callbacks == nil {
		n.callbacks = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.callbacks[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.callbacks, id)
		n.Cancels++
	}
}

// Navigate delivers a navigation event to every registered callback.
func (n *FakeNavigator) Navigate() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.callbacks))
	for _, fn := range n.callbacks {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FakeAdapter bundles the fakes into an Adapter.
type FakeAdapter struct {
	MediaEl    *FakeMedia
	CaptionsEl *FakeCaptions
	BarEl      *FakeProgressBar
}

// NewFakeAdapter wires a complete fake page.
func NewFakeAdapter(duration float64) *FakeAdapter {
	return &FakeAdapter{
		MediaEl:    NewFakeMedia(duration),
		CaptionsEl: &FakeCaptions{},
		BarEl:      &FakeProgressBar{},
	}
}

func (a *FakeAdapter) Media() (MediaController, bool) {
	if a.MediaEl == nil {
		return nil, false
	}
	return a.MediaEl, true
}

func (a *FakeAdapter) Captions() CaptionObserver { return a.CaptionsEl }

func (a *FakeAdapter) ProgressBar() ProgressBarHost { return a.BarEl }
