package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CompactHandler renders records as single console lines:
// [LEVEL] HH:MM:SS message | key=value key=value
type CompactHandler struct {
	opts  slog.HandlerOptions
	mu    sync.Mutex
	out   io.Writer
	attrs []slog.Attr
}

// NewCompactHandler creates a compact console handler.
func NewCompactHandler(w io.Writer, opts *slog.HandlerOptions) *CompactHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &CompactHandler{opts: *opts, out: w}
}

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.Grow(256)

	fmt.Fprintf(&b, "[%-5s] ", r.Level.String())
	b.WriteString(r.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	first := true
	writeAttr := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if first {
			b.WriteString(" |")
			first = false
		}
		b.WriteByte(' ')
		appendAttr(&b, a)
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func appendAttr(b *strings.Builder, a slog.Attr) {
	// Request IDs are shortened to their first 8 chars to keep lines
	// scannable.
	if a.Key == "requestID" {
		if s, ok := a.Value.Any().(string); ok && len(s) > 8 {
			b.WriteString("req=")
			b.WriteString(s[:8])
			return
		}
	}

	b.WriteString(a.Key)
	b.WriteByte('=')

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"=") {
			b.WriteString(strconv.Quote(s))
		} else {
			b.WriteString(s)
		}
	case slog.KindTime:
		b.WriteString(v.Time().Format(time.RFC3339))
	default:
		fmt.Fprintf(b, "%v", v.Any())
	}
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CompactHandler{
		opts:  h.opts,
		out:   h.out,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *CompactHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; the console format has no nesting.
	return h
}
