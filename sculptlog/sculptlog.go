// Copyright © 2026 Freestyle Sculpt contributors.

// Package sculptlog is the one indirection layer between the core and
// log/slog. gazed-vu's physics and eg packages call slog.Debug/Warn/Error
// directly at the call site; this core does the same, but through a
// package-level logger the host can redirect or discard, matching the
// "every debug output path is an optional sink injected by the host"
// rule: the algorithms themselves never change shape with logging off.
package sculptlog

import (
	"io"
	"log/slog"
)

var logger = slog.Default()

// SetLogger redirects all core logging to l. Pass slog.New(slog.NewTextHandler(io.Discard, nil))
// (or call Disable) to silence the core entirely.
func SetLogger(l *slog.Logger) { logger = l }

// Disable discards all core log output.
func Disable() { logger = slog.New(slog.NewTextHandler(io.Discard, nil)) }

// Debug logs a StaleId-class event: a lookup against a removed element.
// Never surfaced as an error to the host, per spec: logged once, then ignored.
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Warn logs a recoverable but noteworthy condition (e.g. degenerate
// geometry skipped without mutating).
func Warn(msg string, args ...any) { logger.Warn(msg, args...) }

// Error logs a BrokenInvariant-class event: an internal assertion failed
// and the operation that found it aborted.
func Error(msg string, args ...any) { logger.Error(msg, args...) }
