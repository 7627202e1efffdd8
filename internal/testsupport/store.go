package testsupport

import (
	"testing"

	"hushplay/internal/config"
	"hushplay/internal/store"
)

// NewStore opens a store backed by a per-test temp directory and closes it
// on cleanup.
func NewStore(t testing.TB) (*store.Store, *config.Config) {
	t.Helper()

	cfg := NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st, cfg
}
