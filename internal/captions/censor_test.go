package captions

import (
	"testing"

	"hushplay/internal/lexicon"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
)

func allOn() prefs.Preferences {
	p := prefs.Default()
	p.FilterMild = true
	p.FilterReligious = true
	return p
}

func TestCensorTextReplacesWholeToken(t *testing.T) {
	got, count := CensorText("that is a BULLSHIT thing", allOn(), lexicon.Default(), "(bleep)")
	if got != "that is a (bleep) thing" {
		t.Errorf("got %q", got)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestCensorTextPreservesDelimiters(t *testing.T) {
	got, count := CensorText("Well -- shit!  Really?!", allOn(), lexicon.Default(), "(bleep)")
	if got != "Well -- (bleep)!  Really?!" {
		t.Errorf("got %q", got)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestCensorTextSeverityToggles(t *testing.T) {
	p := prefs.Default() // mild off
	got, count := CensorText("damn right", p, lexicon.Default(), "(bleep)")
	if got != "damn right" || count != 0 {
		t.Errorf("mild disabled: got %q count %d", got, count)
	}
	p.FilterMild = true
	got, count = CensorText("damn right", p, lexicon.Default(), "(bleep)")
	if got != "(bleep) right" || count != 1 {
		t.Errorf("mild enabled: got %q count %d", got, count)
	}
}

func TestCensorTextSafeWord(t *testing.T) {
	got, count := CensorText("hello there, classic assassin", allOn(), lexicon.Default(), "(bleep)")
	if count != 0 {
		t.Errorf("safe words censored: %q (count %d)", got, count)
	}
}

func TestCensorTextBlacklistIgnoresSeverityToggles(t *testing.T) {
	p := prefs.Preferences{} // every severity off
	p.Blacklist = []string{"frak"}
	got, count := CensorText("what the Frak", p, lexicon.Default(), "(bleep)")
	if got != "what the (bleep)" || count != 1 {
		t.Errorf("got %q count %d", got, count)
	}
}

func TestCensorTextWhitelistBeatsLexicon(t *testing.T) {
	p := allOn()
	p.Whitelist = []string{"hellraiser"}
	got, count := CensorText("hellraiser marathon", p, lexicon.Default(), "(bleep)")
	if count != 0 {
		t.Errorf("whitelisted word censored: %q", got)
	}
}

func TestCensorTextContractions(t *testing.T) {
	got, count := CensorText("that's fucked up", allOn(), lexicon.Default(), "(bleep)")
	if got != "that's (bleep) up" || count != 1 {
		t.Errorf("got %q count %d", got, count)
	}
}

func TestCensorTextIdempotent(t *testing.T) {
	first, count := CensorText("utter bullshit here", allOn(), lexicon.Default(), "(bleep)")
	if count != 1 {
		t.Fatalf("first pass count = %d", count)
	}
	second, count2 := CensorText(first, allOn(), lexicon.Default(), "(bleep)")
	if second != first || count2 != 0 {
		t.Errorf("second pass changed text: %q (count %d)", second, count2)
	}
}

func TestProcessIdempotentPerSegment(t *testing.T) {
	c := New(Options{Preferences: allOn()})
	segment := &player.FakeSegment{SegID: "n1", Content: "that is a BADWORD thing"}
	p := allOn()
	p.Blacklist = []string{"badword"}
	c.UpdatePreferences(p)

	c.Process(segment)
	if segment.Content != "that is a (bleep) thing" {
		t.Fatalf("content = %q", segment.Content)
	}
	if c.CensoredCount() != 1 {
		t.Fatalf("count = %d, want 1", c.CensoredCount())
	}

	// Repeated observation of the same node must not double-count or
	// re-censor.
	writes := segment.Writes
	c.Process(segment)
	c.Process(segment)
	if c.CensoredCount() != 1 {
		t.Errorf("count after re-processing = %d, want 1", c.CensoredCount())
	}
	if segment.Writes != writes {
		t.Error("re-processing wrote text again")
	}
}

func TestProcessHandlesInPlaceMutation(t *testing.T) {
	c := New(Options{Preferences: allOn()})
	segment := &player.FakeSegment{SegID: "n1", Content: "all good"}
	c.Process(segment)
	if c.CensoredCount() != 0 {
		t.Fatal("clean text censored")
	}

	// The same node mutates to new text; it must be evaluated again.
	segment.Content = "oh shit"
	c.Process(segment)
	if segment.Content != "oh (bleep)" {
		t.Errorf("mutated content = %q", segment.Content)
	}
	if c.CensoredCount() != 1 {
		t.Errorf("count = %d, want 1", c.CensoredCount())
	}
}

func TestStartStopObserver(t *testing.T) {
	c := New(Options{Preferences: allOn()})
	captions := &player.FakeCaptions{}
	if err := c.Start(captions); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(captions); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if captions.Observers != 1 {
		t.Errorf("observers = %d, want 1 (Start is idempotent)", captions.Observers)
	}

	captions.Emit(&player.FakeSegment{SegID: "a", Content: "pure shit"})
	if c.CensoredCount() != 1 {
		t.Errorf("count = %d, want 1", c.CensoredCount())
	}

	c.Stop()
	if captions.Cancels != 1 {
		t.Errorf("cancels = %d, want 1", captions.Cancels)
	}
	captions.Emit(&player.FakeSegment{SegID: "b", Content: "more shit"})
	if c.CensoredCount() != 1 {
		t.Error("detached censor still processed segments")
	}
}
