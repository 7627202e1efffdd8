package timeline

import (
	"testing"

	"hushplay/internal/intervals"
	"hushplay/internal/lexicon"
	"hushplay/internal/player"
)

func testSet() intervals.Set {
	return intervals.Set{
		{Start: 10, End: 20, Word: "one", Severity: lexicon.SeveritySevere},
		{Start: 50, End: 50.05, Word: "two", Severity: lexicon.SeverityMild},
	}
}

func TestProjectPercentages(t *testing.T) {
	markers := Project(testSet(), 100, 0.5)
	if len(markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(markers))
	}
	if markers[0].LeftPct != 10 || markers[0].WidthPct != 10 {
		t.Errorf("marker 0 = %+v, want left 10 width 10", markers[0])
	}
	// 0.05s over 100s is 0.05%, below the minimum width.
	if markers[1].WidthPct != 0.5 {
		t.Errorf("marker 1 width = %v, want minimum 0.5", markers[1].WidthPct)
	}
}

func TestProjectClampsToBar(t *testing.T) {
	set := intervals.Set{{Start: 99.5, End: 100, Word: "late", Severity: lexicon.SeveritySevere}}
	markers := Project(set, 100, 5)
	if markers[0].LeftPct+markers[0].WidthPct > 100 {
		t.Errorf("marker overflows bar: left %v width %v", markers[0].LeftPct, markers[0].WidthPct)
	}
}

func TestProjectZeroDuration(t *testing.T) {
	if got := Project(testSet(), 0, 0.5); got != nil {
		t.Errorf("Project with zero duration = %v, want nil", got)
	}
}

func TestShowRendersWhenDurationKnown(t *testing.T) {
	bar := &player.FakeProgressBar{}
	media := player.NewFakeMedia(100)
	r := New(Options{Bar: bar, Media: media, SeekBackSeconds: 2})

	r.Show(testSet())
	if bar.SetCalls != 1 {
		t.Fatalf("SetMarkers calls = %d, want 1", bar.SetCalls)
	}
	if len(bar.Markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(bar.Markers))
	}
}

func TestShowDefersUntilDurationAnnounced(t *testing.T) {
	bar := &player.FakeProgressBar{}
	media := player.NewFakeMedia(0) // metadata not yet known
	r := New(Options{Bar: bar, Media: media})

	r.Show(testSet())
	if bar.SetCalls != 0 {
		t.Fatalf("rendered before duration known")
	}
	bar.AnnounceDuration(200)
	if bar.SetCalls != 1 {
		t.Fatalf("late duration should trigger render, calls = %d", bar.SetCalls)
	}
	if bar.Markers[0].LeftPct != 5 {
		t.Errorf("marker left = %v, want 5 (10s of 200s)", bar.Markers[0].LeftPct)
	}
}

func TestClickSeeksBeforeIntervalStart(t *testing.T) {
	bar := &player.FakeProgressBar{}
	media := player.NewFakeMedia(100)
	r := New(Options{Bar: bar, Media: media, SeekBackSeconds: 2})

	r.Show(testSet())
	bar.Click(0)
	if len(media.SeekedTo) != 1 || media.SeekedTo[0] != 8 {
		t.Errorf("SeekedTo = %v, want [8]", media.SeekedTo)
	}

	// Clicking a marker whose start is inside the seek-back window clamps
	// to zero.
	r.Update(intervals.Set{{Start: 1, End: 3, Word: "early", Severity: lexicon.SeveritySevere}})
	bar.Click(0)
	if media.SeekedTo[len(media.SeekedTo)-1] != 0 {
		t.Errorf("early click seeked to %v, want 0", media.SeekedTo[len(media.SeekedTo)-1])
	}

	bar.Click(5) // out of range is ignored
}

func TestUpdateReRenders(t *testing.T) {
	bar := &player.FakeProgressBar{}
	media := player.NewFakeMedia(100)
	r := New(Options{Bar: bar, Media: media})

	r.Show(testSet())
	r.Update(intervals.Set{{Start: 30, End: 40, Word: "new", Severity: lexicon.SeverityModerate}})
	if bar.SetCalls != 2 {
		t.Fatalf("SetCalls = %d, want 2", bar.SetCalls)
	}
	if len(bar.Markers) != 1 || bar.Markers[0].LeftPct != 30 {
		t.Errorf("markers after update = %+v", bar.Markers)
	}
}

func TestDestroyClearsAndUnregisters(t *testing.T) {
	bar := &player.FakeProgressBar{}
	media := player.NewFakeMedia(100)
	r := New(Options{Bar: bar, Media: media})

	r.Show(testSet())
	r.Destroy()
	if bar.ClearCalls != 1 {
		t.Errorf("ClearCalls = %d, want 1", bar.ClearCalls)
	}
	if bar.Cancels != 1 {
		t.Errorf("duration callback cancels = %d, want 1", bar.Cancels)
	}
	// A late duration announcement must not resurrect markers.
	bar.AnnounceDuration(300)
	if bar.SetCalls != 1 {
		t.Error("destroyed renderer re-rendered on late duration")
	}
}
