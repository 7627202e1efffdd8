package intervals

import (
	"sort"
	"strings"

	"hushplay/internal/lexicon"
	"hushplay/internal/prefs"
	"hushplay/internal/transcript"
)

// Derive builds the mute interval set for a transcript under the given
// preferences. Severity filtering uses exactly the same lexicon the caption
// censor uses. Custom blacklist words match case-insensitively regardless of
// severity toggles; whitelist words never produce intervals. Padding is
// applied per word and overlapping or near-adjacent intervals are merged.
func Derive(tr *transcript.Transcript, p prefs.Preferences, lex *lexicon.Lexicon) Set {
	if tr == nil || len(tr.Words) == 0 {
		return nil
	}

	whitelist := foldSet(lex, p.Whitelist)
	blacklist := foldSet(lex, p.Blacklist)

	padBefore := float64(p.PaddingBeforeMS) / 1000
	padAfter := float64(p.PaddingAfterMS) / 1000

	raw := make(Set, 0)
	for _, word := range tr.Words {
		folded := lex.Fold(strings.TrimSpace(word.Text))
		if folded == "" {
			continue
		}
		if _, ok := whitelist[folded]; ok {
			continue
		}

		severity, hit := matchSeverity(lex, word.Text, p)
		if _, banned := blacklist[folded]; banned && !hit {
			severity, hit = lexicon.SeveritySevere, true
		}
		if !hit {
			continue
		}

		start := word.Start - padBefore
		if start < 0 {
			start = 0
		}
		raw = append(raw, Interval{
			Start:    start,
			End:      word.End + padAfter,
			Word:     strings.TrimSpace(word.Text),
			Severity: severity,
		})
	}
	if len(raw) == 0 {
		return nil
	}

	sort.Slice(raw, func(i, j int) bool { return raw[i].Start < raw[j].Start })
	return merge(raw, float64(p.MergeThresholdMS)/1000)
}

// matchSeverity returns the most severe enabled lexicon match for a token.
func matchSeverity(lex *lexicon.Lexicon, token string, p prefs.Preferences) (lexicon.Severity, bool) {
	var best lexicon.Severity
	found := false
	for _, entry := range lex.Matches(token) {
		if !p.SeverityEnabled(entry.Severity) {
			continue
		}
		if !found {
			best, found = entry.Severity, true
			continue
		}
		best = moreSevere(best, entry.Severity)
	}
	return best, found
}

// merge combines intervals that overlap or sit within threshold seconds of
// each other, keeping the triggering words of both and the higher severity.
func merge(sorted Set, threshold float64) Set {
	merged := make(Set, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End+threshold {
			if next.End > current.End {
				current.End = next.End
			}
			if next.Word != "" && next.Word != current.Word {
				current.Word = current.Word + ", " + next.Word
			}
			current.Severity = moreSevere(current.Severity, next.Severity)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

func foldSet(lex *lexicon.Lexicon, words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		folded := lex.Fold(strings.TrimSpace(word))
		if folded == "" {
			continue
		}
		set[folded] = struct{}{}
	}
	return set
}
