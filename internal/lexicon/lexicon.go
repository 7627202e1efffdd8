// Package lexicon holds the severity-tagged profanity list and the matching
// rules shared by interval derivation and caption censoring, so audio and
// captions always agree on what counts as profane.
package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity is a user-toggleable profanity tier.
type Severity string

const (
	SeverityMild      Severity = "mild"
	SeverityModerate  Severity = "moderate"
	SeveritySevere    Severity = "severe"
	SeverityReligious Severity = "religious"
)

var severitySet = map[Severity]struct{}{
	SeverityMild:      {},
	SeverityModerate:  {},
	SeveritySevere:    {},
	SeverityReligious: {},
}

// ParseSeverity converts a string into a known Severity.
func ParseSeverity(value string) (Severity, bool) {
	normalized := Severity(strings.ToLower(strings.TrimSpace(value)))
	_, ok := severitySet[normalized]
	return normalized, ok
}

// Entry is a single banned term with its severity tier.
type Entry struct {
	Term     string
	Severity Severity
}

// Lexicon matches tokens against banned terms while honoring a safe-word
// list that suppresses false positives on words that merely contain a
// banned substring.
type Lexicon struct {
	entries []Entry
	safe    map[string]struct{}
	folder  cases.Caser
}

// New builds a lexicon from entries and safe words. Terms and safe words are
// case-folded once at construction.
func New(entries []Entry, safeWords []string) *Lexicon {
	folder := cases.Lower(language.Und)
	lex := &Lexicon{
		entries: make([]Entry, 0, len(entries)),
		safe:    make(map[string]struct{}, len(safeWords)),
		folder:  folder,
	}
	for _, entry := range entries {
		term := folder.String(strings.TrimSpace(entry.Term))
		if term == "" {
			continue
		}
		lex.entries = append(lex.entries, Entry{Term: term, Severity: entry.Severity})
	}
	for _, word := range safeWords {
		word = folder.String(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		lex.safe[word] = struct{}{}
	}
	return lex
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return New(defaultEntries, defaultSafeWords)
}

// Fold normalizes a token the same way lexicon terms are normalized.
func (l *Lexicon) Fold(token string) string {
	return l.folder.String(token)
}

// IsSafe reports whether the token exactly matches a safe word after
// folding.
func (l *Lexicon) IsSafe(token string) bool {
	_, ok := l.safe[l.Fold(strings.TrimSpace(token))]
	return ok
}

// Matches returns every banned entry embedded in the token. Safe words never
// match. A token may match more than one entry.
func (l *Lexicon) Matches(token string) []Entry {
	folded := l.Fold(strings.TrimSpace(token))
	if folded == "" {
		return nil
	}
	if _, safe := l.safe[folded]; safe {
		return nil
	}
	var matched []Entry
	for _, entry := range l.entries {
		if strings.Contains(folded, entry.Term) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Entries returns a copy of the banned-term list.
func (l *Lexicon) Entries() []Entry {
	cp := make([]Entry, len(l.entries))
	copy(cp, l.entries)
	return cp
}
