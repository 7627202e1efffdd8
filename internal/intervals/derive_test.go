package intervals

import (
	"testing"

	"hushplay/internal/lexicon"
	"hushplay/internal/prefs"
	"hushplay/internal/transcript"
)

func wordsTranscript(words ...transcript.Word) *transcript.Transcript {
	return &transcript.Transcript{VideoID: "vid", Words: words}
}

func TestDeriveSeverityFiltering(t *testing.T) {
	tr := wordsTranscript(
		transcript.Word{Text: "damn", Start: 1.0, End: 1.3},  // mild, disabled by default
		transcript.Word{Text: "fuck", Start: 5.0, End: 5.4},  // severe, enabled
		transcript.Word{Text: "lovely", Start: 9.0, End: 9.5},
	)
	p := prefs.Default()
	p.PaddingBeforeMS = 0
	p.PaddingAfterMS = 0

	set := Derive(tr, p, lexicon.Default())
	if len(set) != 1 {
		t.Fatalf("interval count = %d, want 1", len(set))
	}
	if set[0].Word != "fuck" || set[0].Severity != lexicon.SeveritySevere {
		t.Errorf("interval = %+v", set[0])
	}
	if set[0].Start != 5.0 || set[0].End != 5.4 {
		t.Errorf("interval times = %v..%v", set[0].Start, set[0].End)
	}
}

func TestDerivePaddingAndClamp(t *testing.T) {
	tr := wordsTranscript(transcript.Word{Text: "shit", Start: 0.1, End: 0.5})
	p := prefs.Default()
	p.PaddingBeforeMS = 300
	p.PaddingAfterMS = 200

	set := Derive(tr, p, lexicon.Default())
	if len(set) != 1 {
		t.Fatalf("interval count = %d, want 1", len(set))
	}
	if set[0].Start != 0 {
		t.Errorf("Start = %v, want clamp to 0", set[0].Start)
	}
	if diff := set[0].End - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("End = %v, want 0.7", set[0].End)
	}
}

func TestDeriveMergesCloseWords(t *testing.T) {
	tr := wordsTranscript(
		transcript.Word{Text: "fucking", Start: 1.0, End: 1.4},
		transcript.Word{Text: "shit", Start: 1.6, End: 2.0},
		transcript.Word{Text: "bitch", Start: 30.0, End: 30.3},
	)
	p := prefs.Default()
	p.PaddingBeforeMS = 0
	p.PaddingAfterMS = 0
	p.MergeThresholdMS = 500

	set := Derive(tr, p, lexicon.Default())
	if len(set) != 2 {
		t.Fatalf("interval count = %d, want 2 (first two merge)", len(set))
	}
	if set[0].Start != 1.0 || set[0].End != 2.0 {
		t.Errorf("merged interval = %v..%v", set[0].Start, set[0].End)
	}
	if set[0].Word != "fucking, shit" {
		t.Errorf("merged word = %q", set[0].Word)
	}
	if set[0].Severity != lexicon.SeveritySevere {
		t.Errorf("merged severity = %q", set[0].Severity)
	}
	if err := set.Validate(); err != nil {
		t.Errorf("derived set invalid: %v", err)
	}
}

func TestDeriveCustomBlacklist(t *testing.T) {
	tr := wordsTranscript(transcript.Word{Text: "Frak", Start: 2.0, End: 2.4})
	p := prefs.Default()
	p.Blacklist = []string{"frak"}
	p.PaddingBeforeMS = 0
	p.PaddingAfterMS = 0

	set := Derive(tr, p, lexicon.Default())
	if len(set) != 1 {
		t.Fatalf("blacklisted word should produce an interval, got %d", len(set))
	}
}

func TestDeriveWhitelistWins(t *testing.T) {
	tr := wordsTranscript(transcript.Word{Text: "shitake", Start: 2.0, End: 2.4})
	p := prefs.Default()
	p.Whitelist = []string{"shitake"}

	if set := Derive(tr, p, lexicon.Default()); len(set) != 0 {
		t.Errorf("whitelisted word produced intervals: %+v", set)
	}
}

func TestDeriveSafeWordSkipped(t *testing.T) {
	tr := wordsTranscript(transcript.Word{Text: "Hello", Start: 1.0, End: 1.2})
	set := Derive(tr, prefs.Default(), lexicon.Default())
	if len(set) != 0 {
		t.Errorf("safe word produced intervals: %+v", set)
	}
}

func TestDeriveEmptyTranscript(t *testing.T) {
	if set := Derive(nil, prefs.Default(), lexicon.Default()); set != nil {
		t.Errorf("nil transcript should derive nil, got %+v", set)
	}
}
