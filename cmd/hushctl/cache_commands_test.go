package main

import (
	"testing"

	"hushplay/internal/transcript"
)

func sampleCachedTranscript() *transcript.Transcript {
	return &transcript.Transcript{
		VideoID: "vid-abc",
		Words: []transcript.Word{
			{Text: "hello", Start: 0.5, End: 0.9},
			{Text: "world", Start: 1.0, End: 1.4},
		},
	}
}

func TestCacheListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedTranscript(t, sampleCachedTranscript())

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "vid-abc")

	out, _, err = runCLI(t, []string{"cache", "show", "vid-abc"}, env.configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "hello")
	requireContains(t, out, "world")
}

func TestCacheShowMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"cache", "show", "nope"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing transcript")
	}
	requireContains(t, err.Error(), "no cached transcript")
}

func TestCacheClear(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedTranscript(t, sampleCachedTranscript())

	out, _, err := runCLI(t, []string{"cache", "clear", "vid-abc"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed cached transcript for vid-abc")

	out, _, err = runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCachePrune(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedTranscript(t, sampleCachedTranscript())

	out, _, err := runCLI(t, []string{"cache", "prune", "--max-age-days", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("cache prune: %v", err)
	}
	// The entry was just written, so nothing is old enough to remove.
	requireContains(t, out, "Pruned 0")
}
