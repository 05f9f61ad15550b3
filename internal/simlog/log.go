// Package simlog provides the structured, category-tagged logging
// capability used throughout the simulation core. There is no
// package-level singleton: every subsystem receives a *Logger at
// construction, and a Logger is only ever a thin wrapper around an
// injected *slog.Logger plus an injected tick source, matching the
// core's "no global mutable state" design rule.
package simlog

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// Category classifies a log line the way external collaborators expect
// at the boundary: SYSTEM, GAMEPLAY, AI, RENDER, INPUT, ERROR.
type Category string

const (
	System   Category = "SYSTEM"
	Gameplay Category = "GAMEPLAY"
	AI       Category = "AI"
	Render   Category = "RENDER"
	Input    Category = "INPUT"
	Err      Category = "ERROR"
)

// TickSource supplies the current tick number for tagging. The clock
// implements this; tests may use a literal function.
type TickSource interface {
	CurrentTick() uint64
}

// Logger tags every record with category and tick, then delegates to the
// underlying *slog.Logger.
type Logger struct {
	base *slog.Logger
	tick TickSource
}

// New wraps base with the given tick source. base is typically built via
// slog.NewTextHandler in cmd/holdfast's main.
func New(base *slog.Logger, tick TickSource) *Logger {
	return &Logger{base: base, tick: tick}
}

// NewDefault builds a Logger over a stderr text handler, for callers
// (tests, small tools) that don't want to wire their own slog root.
func NewDefault(tick TickSource) *Logger {
	return New(slog.New(slog.NewTextHandler(os.Stderr, nil)), tick)
}

// SetTickSource rebinds the tick source after construction, for callers
// (the simulation driver, handed a logger that cmd/holdfast built) that
// receive the logger before the clock it will tag messages from exists.
func (l *Logger) SetTickSource(tick TickSource) {
	l.tick = tick
}

func (l *Logger) log(level slog.Level, cat Category, msg string, args ...any) {
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, "category", string(cat))
	if l.tick != nil {
		attrs = append(attrs, "tick", l.tick.CurrentTick())
	}
	attrs = append(attrs, args...)
	l.base.Log(context.Background(), level, msg, attrs...)
}

func (l *Logger) System(msg string, args ...any)   { l.log(slog.LevelInfo, System, msg, args...) }
func (l *Logger) Gameplay(msg string, args ...any)  { l.log(slog.LevelInfo, Gameplay, msg, args...) }
func (l *Logger) AI(msg string, args ...any)        { l.log(slog.LevelDebug, AI, msg, args...) }
func (l *Logger) Render(msg string, args ...any)    { l.log(slog.LevelDebug, Render, msg, args...) }
func (l *Logger) Input(msg string, args ...any)     { l.log(slog.LevelDebug, Input, msg, args...) }
func (l *Logger) Error(msg string, args ...any)     { l.log(slog.LevelError, Err, msg, args...) }
func (l *Logger) Warn(cat Category, msg string, args ...any) {
	l.log(slog.LevelWarn, cat, msg, args...)
}

// FormatTicks renders a tick count as a short human-readable duration for
// status lines.
func FormatTicks(ticks uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 1
	}
	seconds := ticks / uint64(tickRate)
	return humanize.Comma(int64(seconds)) + "s"
}
