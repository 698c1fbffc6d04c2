// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const termMsgJust = 40

// TerminalHandler renders records as aligned human-readable lines:
//
//	INFO [08-02|15:04:05.000] message      key=value ...
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Leveler
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler creates a terminal handler at info level.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, LevelInfo, useColor)
}

// NewTerminalHandlerWithLevel creates a terminal handler emitting
// records at or above the given level.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Leveler, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	label := levelLabel(r.Level)
	if h.useColor {
		if color := levelColor(r.Level); color > 0 {
			label = fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, label)
		}
	}
	b.WriteString(label)
	b.WriteString(fmt.Sprintf("[%s] ", r.Time.Format("01-02|15:04:05.000")))
	b.WriteString(r.Message)

	// justify short messages so the attributes line up
	if pad := termMsgJust - len(r.Message); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.wr, b.String())
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup is accepted but flattens the group, which is good enough
// for terminal output.
func (h *TerminalHandler) WithGroup(string) slog.Handler { return h }

func writeAttr(b *strings.Builder, attr slog.Attr) {
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	b.WriteByte('=')
	val := attr.Value.String()
	if strings.ContainsAny(val, " \t\n\"") {
		val = fmt.Sprintf("%q", val)
	}
	b.WriteString(val)
}

func levelLabel(lvl slog.Level) string {
	switch {
	case lvl >= LevelCrit:
		return "CRIT "
	case lvl >= LevelError:
		return "ERROR"
	case lvl >= LevelWarn:
		return "WARN "
	case lvl >= LevelInfo:
		return "INFO "
	case lvl >= LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

func levelColor(lvl slog.Level) int {
	switch {
	case lvl >= LevelCrit:
		return 35 // magenta
	case lvl >= LevelError:
		return 31 // red
	case lvl >= LevelWarn:
		return 33 // yellow
	case lvl >= LevelInfo:
		return 32 // green
	default:
		return 36 // cyan
	}
}

// JSONHandler renders records as JSON lines at debug level and above.
func JSONHandler(wr io.Writer) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{Level: LevelDebug})
}

// JSONHandlerWithLevel renders records as JSON lines at or above the
// given level.
func JSONHandlerWithLevel(wr io.Writer, lvl slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{Level: lvl})
}
