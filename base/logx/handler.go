// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that prints message-oriented output
// with ANSI-colored level labels, filtered by [UserLevel].
type Handler struct {
	mu     sync.Mutex
	w      io.Writer
	out    *termenv.Output
	attrs  []slog.Attr
	groups []string
}

// NewHandler makes a new [Handler] writing to the given writer.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w, out: termenv.NewOutput(w)}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return levelEnabled(level)
}

// levelColor returns the ANSI color sequence for the given level label.
func (h *Handler) levelColor(level slog.Level) termenv.Color {
	switch {
	case level >= slog.LevelError:
		return h.out.Color("9") // red
	case level >= slog.LevelWarn:
		return h.out.Color("11") // yellow
	case level >= slog.LevelInfo:
		return h.out.Color("12") // blue
	default:
		return h.out.Color("8") // gray
	}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	b := &strings.Builder{}
	label := h.out.String(r.Level.String() + ":").Foreground(h.levelColor(r.Level)).Bold()
	b.WriteString(label.String())
	b.WriteString(" ")
	b.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	writeAttr := func(a slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(h.out.String(prefix + a.Key + "=").Faint().String())
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := NewHandler(h.w)
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	nh.groups = h.groups
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := NewHandler(h.w)
	nh.attrs = h.attrs
	nh.groups = append(append([]string{}, h.groups...), name)
	return nh
}
