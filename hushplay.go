// Package hushplay assembles the profanity-filtering core for a host
// application: configuration, logging, the persistent store, and the
// filter orchestrator, bound to the host's page adapter and transcription
// client.
package hushplay

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"hushplay/internal/config"
	"hushplay/internal/logging"
	"hushplay/internal/orchestrator"
	"hushplay/internal/player"
	"hushplay/internal/prefs"
	"hushplay/internal/services/transcription"
	"hushplay/internal/store"
)

// HostOptions binds the core to one host.
type HostOptions struct {
	// ConfigPath overrides the default config location; empty uses
	// ~/.config/hushplay/config.toml or defaults.
	ConfigPath string

	Adapter   player.Adapter
	Client    transcription.Client
	Navigator player.Navigator

	Confirm  orchestrator.ConfirmFunc
	OnStatus func(orchestrator.StatusUpdate)
}

// Core owns the assembled filtering components for one host process.
type Core struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	notifier *prefs.Notifier
	orch     *orchestrator.Orchestrator
}

// New loads configuration, opens the store, and constructs the
// orchestrator. The returned Core must be Closed to release the data
// directory lock.
func New(opts HostOptions) (*Core, error) {
	if opts.Adapter == nil {
		return nil, errors.New("hushplay: page adapter is required")
	}
	if opts.Client == nil {
		return nil, errors.New("hushplay: transcription client is required")
	}

	cfg, _, _, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "hushplay.log")},
	})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	notifier := prefs.NewNotifier()
	orch, err := orchestrator.New(orchestrator.Options{
		Config:    cfg,
		Store:     st,
		Client:    opts.Client,
		Adapter:   opts.Adapter,
		Notifier:  notifier,
		Navigator: opts.Navigator,
		Logger:    logger,
		Confirm:   opts.Confirm,
		OnStatus:  opts.OnStatus,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &Core{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		notifier: notifier,
		orch:     orch,
	}, nil
}

// Trigger starts a filtering attempt for the given video. It blocks until
// the filter is active or the attempt fails; hosts call it from a goroutine.
func (c *Core) Trigger(ctx context.Context, videoID string) error {
	return c.orch.OnFilterTrigger(ctx, videoID)
}

// Toggle pauses or resumes the active filter.
func (c *Core) Toggle() error {
	return c.orch.ToggleFilter()
}

// Navigate invalidates the live session; hosts without a Navigator adapter
// call it on page navigation.
func (c *Core) Navigate() {
	c.orch.OnNavigate()
}

// Status returns the live session snapshot, if any.
func (c *Core) Status() (orchestrator.StatusUpdate, bool) {
	return c.orch.Status()
}

// Preferences returns the current preference snapshot. Hosts that honor
// AutoEnable trigger filtering themselves once the video is known.
func (c *Core) Preferences() prefs.Preferences {
	return c.orch.Preferences()
}

// UpdatePreferences persists new preferences and broadcasts them to the
// live session, which re-derives intervals without interrupting playback.
func (c *Core) UpdatePreferences(ctx context.Context, p prefs.Preferences) error {
	p.Normalize()
	if err := c.store.SavePreferences(ctx, p); err != nil {
		return err
	}
	c.notifier.Publish(p)
	return nil
}

// Close tears down the live session and releases the store lock.
func (c *Core) Close() error {
	c.orch.Close()
	return c.store.Close()
}
