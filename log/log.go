// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin structured-logging layer over log/slog with a
// process-wide root logger. Packages derive a contextual logger once:
//
//	var logger = log.WithContext("pkg", "bufpool")
//
// and emit key/value records through it.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelCrit  = slog.Level(12)
)

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(NewTerminalHandler(os.Stderr, false)))
}

// NewLogger wraps a handler into a logger.
func NewLogger(h slog.Handler) *slog.Logger {
	return slog.New(h)
}

// SetDefault replaces the root logger.
func SetDefault(l *slog.Logger) {
	root.Store(l)
}

// Root returns the root logger.
func Root() *slog.Logger {
	return root.Load()
}

// WithContext derives a logger carrying the given key/value context
// on every record. The returned logger follows the root: replacing it
// with SetDefault redirects already-derived loggers too, so packages
// may derive theirs at init time.
func WithContext(args ...any) *slog.Logger {
	return slog.New(dynamicHandler{}).With(args...)
}

// dynamicHandler resolves the root handler at record time instead of
// capturing it at derivation time.
type dynamicHandler struct {
	attrs []slog.Attr
}

func (d dynamicHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return Root().Handler().Enabled(ctx, lvl)
}

func (d dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	h := Root().Handler()
	if len(d.attrs) > 0 {
		h = h.WithAttrs(d.attrs)
	}
	return h.Handle(ctx, r)
}

func (d dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(d.attrs[:len(d.attrs):len(d.attrs)], attrs...)
	return dynamicHandler{attrs: merged}
}

func (d dynamicHandler) WithGroup(string) slog.Handler { return d }

// Trace emits a record below debug level.
func Trace(msg string, args ...any) {
	Root().Log(context.Background(), LevelTrace, msg, args...)
}

// Debug emits a debug record via the root logger.
func Debug(msg string, args ...any) {
	Root().Debug(msg, args...)
}

// Info emits an info record via the root logger.
func Info(msg string, args ...any) {
	Root().Info(msg, args...)
}

// Warn emits a warning record via the root logger.
func Warn(msg string, args ...any) {
	Root().Warn(msg, args...)
}

// Error emits an error record via the root logger.
func Error(msg string, args ...any) {
	Root().Error(msg, args...)
}

// Crit emits a critical record and terminates the process.
func Crit(msg string, args ...any) {
	Root().Log(context.Background(), LevelCrit, msg, args...)
	os.Exit(1)
}
