// Package logging wires log/slog for the filtering core: structured
// attribute helpers, standardized field keys, a console handler for
// interactive use, and a sampler that keeps poll-driven progress events
// from flooding the log.
package logging
