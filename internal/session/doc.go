// Package session holds the per-video filter session and its status state
// machine. Sessions are owned exclusively by the orchestrator; engines
// receive interval data but never session identity.
package session
