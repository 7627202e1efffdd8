// Package captions rewrites profane words inside caption text as it streams
// onto the screen, using the same severity and whitelist rules as interval
// derivation.
package captions

import (
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"hushplay/internal/lexicon"
	"hushplay/internal/logging"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
)

// Options configures a Censor.
type Options struct {
	Lexicon     *lexicon.Lexicon
	Preferences prefs.Preferences
	// Marker replaces each censored token. Defaults to "(bleep)".
	Marker string
	Logger *slog.Logger
}

// Censor observes caption segments and censors profane tokens in place.
// Re-processing an already-censored segment is a no-op: a processed set
// keyed by segment identity plus content guards against double counting
// when observation callbacks repeat, while still catching in-place text
// mutations.
type Censor struct {
	mu sync.Mutex

	lex    *lexicon.Lexicon
	prefs  prefs.Preferences
	marker string
	logger *slog.Logger

	processed map[string]struct{}
	censored  int
	cancel    func()
}

// New constructs a censor.
func New(opts Options) *Censor {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.Default()
	}
	if strings.TrimSpace(opts.Marker) == "" {
		opts.Marker = "(bleep)"
	}
	return &Censor{
		lex:       opts.Lexicon,
		prefs:     opts.Preferences,
		marker:    opts.Marker,
		logger:    logging.NewComponentLogger(opts.Logger, "captions"),
		processed: make(map[string]struct{}),
	}
}

// Start attaches to the caption observer. It is a no-op when already
// attached.
func (c *Censor) Start(observer player.CaptionObserver) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	cancel, err := observer.Observe(c.Process)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	return nil
}

// Stop detaches from the observer and clears the processed set. The
// censored-word counter survives so the session can report totals.
func (c *Censor) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.processed = make(map[string]struct{})
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// UpdatePreferences hot-swaps the censoring rules. The processed set is
// cleared so segments still on screen are re-evaluated under the new rules.
func (c *Censor) UpdatePreferences(p prefs.Preferences) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs = p
	c.processed = make(map[string]struct{})
}

// CensoredCount returns the running number of censored tokens.
func (c *Censor) CensoredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.censored
}

// Process censors one caption segment. It is the observation callback and
// is safe to invoke repeatedly with the same segment.
func (c *Censor) Process(segment player.CaptionSegment) {
	text := segment.Text()
	key := segment.ID() + "\x00" + text

	c.mu.Lock()
	if _, done := c.processed[key]; done {
		c.mu.Unlock()
		return
	}
	c.processed[key] = struct{}{}
	p := c.prefs
	marker := c.marker
	lex := c.lex
	c.mu.Unlock()

	censoredText, count := CensorText(text, p, lex, marker)
	if count == 0 || censoredText == text {
		return
	}
	segment.SetText(censoredText)

	c.mu.Lock()
	c.censored += count
	// The rewritten content maps to a new key; mark it too so the write
	// back does not trigger a second pass.
	c.processed[segment.ID()+"\x00"+censoredText] = struct{}{}
	c.mu.Unlock()
}

// CensorText rewrites profane tokens in a text block, preserving all
// delimiters verbatim. It returns the rewritten text and the number of
// censored tokens.
func CensorText(text string, p prefs.Preferences, lex *lexicon.Lexicon, marker string) (string, int) {
	if text == "" {
		return text, 0
	}

	whitelist := make(map[string]struct{}, len(p.Whitelist))
	for _, word := range p.Whitelist {
		whitelist[lex.Fold(word)] = struct{}{}
	}
	blacklist := make(map[string]struct{}, len(p.Blacklist))
	for _, word := range p.Blacklist {
		blacklist[lex.Fold(word)] = struct{}{}
	}

	var out strings.Builder
	out.Grow(len(text))
	count := 0
	for _, token := range tokenize(text) {
		if !token.word {
			out.WriteString(token.text)
			continue
		}
		if shouldCensor(token.text, p, lex, whitelist, blacklist) {
			out.WriteString(marker)
			count++
			continue
		}
		out.WriteString(token.text)
	}
	if count == 0 {
		return text, 0
	}
	return out.String(), count
}

func shouldCensor(token string, p prefs.Preferences, lex *lexicon.Lexicon, whitelist, blacklist map[string]struct{}) bool {
	folded := lex.Fold(token)
	if _, ok := whitelist[folded]; ok {
		return false
	}
	// Custom blacklist matches case-insensitively regardless of severity
	// toggles.
	if _, ok := blacklist[folded]; ok {
		return true
	}
	for _, entry := range lex.Matches(token) {
		if p.SeverityEnabled(entry.Severity) {
			return true
		}
	}
	return false
}

type token struct {
	text string
	word bool
}

// tokenize splits text into alternating word and delimiter runs. Apostrophes
// stay inside words so contractions censor as one token.
func tokenize(text string) []token {
	var tokens []token
	var run []rune
	runIsWord := false
	flush := func() {
		if len(run) > 0 {
			tokens = append(tokens, token{text: string(run), word: runIsWord})
			run = run[:0]
		}
	}
	for _, r := range text {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
		if len(run) > 0 && isWord != runIsWord {
			flush()
		}
		runIsWord = isWord
		run = append(run, r)
	}
	flush()
	return tokens
}
