// Package console writes recipe log entries as single key=value lines.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

const badKey = "!BADKEY"

// Options configures the console provider. Writer defaults to stderr, Clock
// to time.Now and an empty or unknown Level to info.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Level  string
}

// Provider hands out loggers that share one writer and level threshold.
type Provider struct {
	writer io.Writer
	clock  func() time.Time
	level  logging.Level
	mu     sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a console provider.
func NewProvider(opts Options) *Provider {
	level, _ := logging.ParseLevel(opts.Level)
	p := &Provider{
		writer: opts.Writer,
		clock:  opts.Clock,
		level:  level,
	}
	if p.writer == nil {
		p.writer = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// GetLogger returns a logger whose entries are tagged with name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &Logger{provider: p, name: name}
}

// Logger is a console logger bound to a name and a set of fields.
type Logger struct {
	provider *Provider
	name     string
	fields   map[string]any
}

var (
	_ interfaces.Logger       = (*Logger)(nil)
	_ interfaces.FieldsLogger = (*Logger)(nil)
)

func (l *Logger) Trace(msg string, args ...any) { l.write(logging.LevelTrace, msg, args) }
func (l *Logger) Debug(msg string, args ...any) { l.write(logging.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(logging.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(logging.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(logging.LevelError, msg, args) }
func (l *Logger) Fatal(msg string, args ...any) { l.write(logging.LevelFatal, msg, args) }

// WithFields returns a child logger carrying fields on every entry.
func (l *Logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &Logger{provider: l.provider, name: l.name, fields: merged}
}

// WithContext folds the fields recorded with logging.ContextWithFields into
// the logger.
func (l *Logger) WithContext(ctx context.Context) interfaces.Logger {
	return l.WithFields(logging.ContextFields(ctx))
}

func (l *Logger) write(level logging.Level, msg string, args []any) {
	p := l.provider
	if p == nil || level < p.level {
		return
	}

	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	appendArgs(fields, args)

	line := formatLine(p.clock().UTC(), level, l.name, msg, fields)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.writer, line)
}

// appendArgs reads args as alternating key/value pairs. A non-string key or a
// trailing value is recorded under !BADKEY.
func appendArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok || key == "" || i == len(args)-1 {
			fields[badKey] = args[i]
			continue
		}
		fields[key] = args[i+1]
		i++
	}
}

func formatLine(ts time.Time, level logging.Level, name, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(level.String()))
	if name != "" {
		b.WriteString(" [")
		b.WriteString(name)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case []string:
		return quote(strings.Join(v, ","))
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case error:
		return quote(v.Error())
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" || strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
