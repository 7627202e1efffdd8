// Package main hosts the hushctl CLI entrypoint and command graph.
//
// The Cobra-based command tree gives operators direct access to the data the
// filtering core persists: the transcript cache, stored preferences, and the
// lexicon lookup rules. It opens the store per invocation behind the same
// directory lock the core uses, so it never races a live filtering host.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
