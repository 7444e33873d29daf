package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders compact human-oriented lines:
//
//	15:04:05 INFO  [fetch] cache miss
//	    - url: https://ws.audioscrobbler.com/2.0/...
type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{writer: w, level: lvl}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	kvs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		flattenAttr(&kvs, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	var component string
	filtered := make([]kv, 0, len(kvs))
	for _, pair := range kvs {
		if pair.key == FieldComponent && component == "" {
			component = pair.value
			continue
		}
		filtered = append(filtered, pair)
	}

	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	var buf bytes.Buffer
	buf.WriteString(timestamp.Format("15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	buf.WriteByte(' ')
	if component != "" {
		buf.WriteByte('[')
		buf.WriteString(component)
		buf.WriteString("] ")
	}
	buf.WriteString(message)
	buf.WriteByte('\n')
	for _, pair := range filtered {
		buf.WriteString("    - ")
		buf.WriteString(pair.key)
		buf.WriteString(": ")
		buf.WriteString(pair.value)
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.cloneHandler()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := h.cloneHandler()
	if strings.TrimSpace(name) != "" {
		clone.groups = append(clone.groups, name)
	}
	return clone
}

func (h *consoleHandler) cloneHandler() *consoleHandler {
	clone := &consoleHandler{writer: h.writer, level: h.level}
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.groups = append(clone.groups, h.groups...)
	return clone
}

type kv struct {
	key   string
	value string
}

func flattenAttr(out *[]kv, groups []string, attr slog.Attr) {
	resolved := attr.Value.Resolve()
	if resolved.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}
		for _, member := range resolved.Group() {
			flattenAttr(out, nested, member)
		}
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	*out = append(*out, kv{key: key, value: valueString(resolved)})
}

func valueString(value slog.Value) string {
	switch value.Kind() {
	case slog.KindString:
		return value.String()
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	default:
		return fmt.Sprint(value.Any())
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}
