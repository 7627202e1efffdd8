package muteengine

import (
	"testing"
	"time"

	"hushplay/internal/intervals"
	"hushplay/internal/lexicon"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
)

func testSet() intervals.Set {
	return intervals.Set{
		{Start: 1.0, End: 2.0, Word: "one", Severity: lexicon.SeveritySevere},
		{Start: 5.0, End: 6.0, Word: "two", Severity: lexicon.SeverityModerate},
	}
}

// newTestEngine returns a started engine whose ticker never fires inside a
// test; position evaluation is driven explicitly through check.
func newTestEngine(t *testing.T, media player.MediaController, set intervals.Set, mode prefs.Mode) *Engine {
	t.Helper()
	e := New(Options{PositionTick: time.Hour})
	e.Initialize(media, set, mode)
	e.Start()
	t.Cleanup(e.Stop)
	return e
}

func TestMutedIffInsideInterval(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)

	tests := []struct {
		position float64
		muted    bool
	}{
		{0.5, false},
		{1.0, true},  // start inclusive
		{1.5, true},
		{2.0, false}, // end exclusive
		{5.5, true},
		{7.0, false},
	}
	for _, tt := range tests {
		media.SetPosition(tt.position)
		e.check()
		if media.Muted != tt.muted {
			t.Errorf("position %v: muted = %v, want %v", tt.position, media.Muted, tt.muted)
		}
	}
}

func TestSeekBackwardReenters(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)

	media.SetPosition(5.5)
	e.check()
	if !media.Muted {
		t.Fatal("should be muted inside second interval")
	}
	// Seek backward past both intervals.
	media.SetPosition(0.2)
	e.check()
	if media.Muted {
		t.Fatal("seek out of interval should unmute")
	}
	// Seek back into the first interval.
	media.SetPosition(1.5)
	e.check()
	if !media.Muted {
		t.Fatal("seek back into interval should mute again")
	}
}

func TestCallbacksFireOnTransitions(t *testing.T) {
	media := player.NewFakeMedia(100)
	var started []string
	ends := 0
	e := New(Options{
		PositionTick: time.Hour,
		OnMuteStart:  func(iv intervals.Interval) { started = append(started, iv.Word) },
		OnMuteEnd:    func() { ends++ },
	})
	e.Initialize(media, testSet(), prefs.ModeMute)
	e.Start()
	defer e.Stop()

	media.SetPosition(1.5)
	e.check()
	e.check() // staying inside fires no duplicate
	media.SetPosition(3.0)
	e.check()

	if len(started) != 1 || started[0] != "one" {
		t.Errorf("OnMuteStart calls = %v", started)
	}
	if ends != 1 {
		t.Errorf("OnMuteEnd calls = %d, want 1", ends)
	}
}

func TestUpdateIntervalsAppliesImmediately(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)

	media.SetPosition(1.5)
	e.check()
	if !media.Muted {
		t.Fatal("precondition: muted inside interval")
	}

	// New preference set no longer covers 1.5.
	e.UpdateIntervals(intervals.Set{{Start: 10, End: 11, Word: "x", Severity: lexicon.SeveritySevere}})
	if media.Muted {
		t.Error("hot-swapped intervals should unmute immediately without a restart")
	}
}

func TestBleepMode(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeBleep)

	media.SetPosition(1.5)
	e.check()
	if !media.Muted || !media.Bleeping {
		t.Errorf("bleep mode inside interval: muted=%v bleeping=%v, want both", media.Muted, media.Bleeping)
	}
	media.SetPosition(3.0)
	e.check()
	if media.Bleeping {
		t.Error("bleep cue should stop on exit")
	}
}

func TestUpdateModeReappliesDuringInterval(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)

	media.SetPosition(1.5)
	e.check()
	if media.Bleeping {
		t.Fatal("mute mode should not bleep")
	}
	e.UpdateMode(prefs.ModeBleep)
	if !media.Bleeping {
		t.Error("switching to bleep mid-interval should start the cue")
	}
	e.UpdateMode(prefs.ModeMute)
	if media.Bleeping {
		t.Error("switching back to mute should stop the cue")
	}
}

func TestStopLeavesMediaUnmuted(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeBleep)

	media.SetPosition(1.5)
	e.check()
	e.Stop()
	if media.Muted || media.Bleeping {
		t.Error("Stop must leave the media audible")
	}
	e.Stop() // idempotent
}

func TestMediaVanishFailsSafe(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)
	e.Start()
	defer e.Stop()

	media.SetPosition(1.5)
	e.check()
	media.Vanish()
	e.check()
	if e.Running() {
		t.Error("engine should shut down when media disappears")
	}
	if e.Suppressing() {
		t.Error("engine should not report suppression after fail-safe")
	}
}

func TestHotSwapOnStoppedEngineLeavesMediaAlone(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)
	e.Stop()

	// Position inside an interval while the engine is stopped.
	media.SetPosition(1.5)
	e.UpdateIntervals(testSet())
	if media.Muted {
		t.Error("interval hot-swap on a stopped engine must not mute")
	}
	e.UpdateMode(prefs.ModeBleep)
	if media.Muted || media.Bleeping {
		t.Error("mode hot-swap on a stopped engine must not touch the media")
	}

	// The swapped state still applies once the engine comes back.
	e.Resume()
	if !media.Muted {
		t.Error("resume should apply the retained intervals")
	}
}

func TestResumeReusesIntervals(t *testing.T) {
	media := player.NewFakeMedia(100)
	e := newTestEngine(t, media, testSet(), prefs.ModeMute)
	e.Start()
	e.Stop()

	media.SetPosition(5.5)
	e.Resume()
	defer e.Stop()
	if !e.Running() {
		t.Fatal("Resume should restart the monitor")
	}
	if !media.Muted {
		t.Error("Resume should re-evaluate immediately using retained intervals")
	}
}
