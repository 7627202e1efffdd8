package prefs

import (
	"testing"

	"hushplay/internal/lexicon"
)

func TestSeverityEnabled(t *testing.T) {
	p := Default()
	if p.SeverityEnabled(lexicon.SeverityMild) {
		t.Error("mild should be off by default")
	}
	if !p.SeverityEnabled(lexicon.SeveritySevere) {
		t.Error("severe should be on by default")
	}
	if p.SeverityEnabled(lexicon.Severity("bogus")) {
		t.Error("unknown severity should never be enabled")
	}
}

func TestNormalize(t *testing.T) {
	p := Preferences{
		Blacklist:        []string{" Frak ", "frak", "", "DANG"},
		Whitelist:        []string{"  OK  "},
		Mode:             Mode("BLEEP"),
		PaddingBeforeMS:  -5,
		MergeThresholdMS: -1,
	}
	p.Normalize()
	if len(p.Blacklist) != 2 || p.Blacklist[0] != "frak" || p.Blacklist[1] != "dang" {
		t.Errorf("Blacklist = %v", p.Blacklist)
	}
	if len(p.Whitelist) != 1 || p.Whitelist[0] != "ok" {
		t.Errorf("Whitelist = %v", p.Whitelist)
	}
	if p.Mode != ModeBleep {
		t.Errorf("Mode = %q, want bleep", p.Mode)
	}
	if p.PaddingBeforeMS != 0 || p.MergeThresholdMS != 0 {
		t.Error("negative durations should clamp to zero")
	}
}

func TestNormalizeDefaultsBadMode(t *testing.T) {
	p := Preferences{Mode: "loud"}
	p.Normalize()
	if p.Mode != ModeMute {
		t.Errorf("Mode = %q, want mute", p.Mode)
	}
}

func TestRoundTrip(t *testing.T) {
	original := Default()
	original.Blacklist = []string{"frak"}
	raw, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Mode != original.Mode || len(decoded.Blacklist) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestUnmarshalEmptyYieldsDefaults(t *testing.T) {
	p, err := Unmarshal("")
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Default()
	if p.Mode != want.Mode || p.FilterSevere != want.FilterSevere || p.MergeThresholdMS != want.MergeThresholdMS {
		t.Errorf("empty payload = %+v, want defaults", p)
	}
}

func TestNotifierFanOutAndUnsubscribe(t *testing.T) {
	n := NewNotifier()
	var got []Mode
	unsub := n.Subscribe(func(p Preferences) { got = append(got, p.Mode) })
	other := 0
	n.Subscribe(func(Preferences) { other++ })

	n.Publish(Preferences{Mode: ModeBleep})
	if len(got) != 1 || got[0] != ModeBleep {
		t.Fatalf("got = %v", got)
	}

	unsub()
	unsub() // second call is a no-op
	n.Publish(Preferences{Mode: ModeMute})
	if len(got) != 1 {
		t.Error("unsubscribed callback should not fire")
	}
	if other != 2 {
		t.Errorf("remaining subscriber fired %d times, want 2", other)
	}
}
