package logger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type FluentOptions struct {
	Host      string
	Port      int
	TagPrefix string
	Level     Level
}

// FluentLogger envía cada entrada a Fluent Bit. El tag es el nivel
// (con TagPrefix delante, lo pone el cliente).
type FluentLogger struct {
	client *fluent.Fluent
	level  Level
	base   map[string]any
}

// NewFluent crea el cliente. fluent no hace ping: los errores de red
// aparecen recién en el primer Post (y se ignoran, el log no puede romper el request).
func NewFluent(opts FluentOptions) (*FluentLogger, error) {
	if strings.TrimSpace(opts.TagPrefix) == "" {
		return nil, errors.New("fluent: tag prefix required")
	}
	port := opts.Port
	if port <= 0 {
		port = 24224
	}

	c, err := fluent.New(fluent.Config{
		FluentHost: opts.Host,
		FluentPort: port,
		TagPrefix:  opts.TagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("fluent: new client: %w", err)
	}

	return &FluentLogger{client: c, level: opts.Level, base: map[string]any{}}, nil
}

func (f *FluentLogger) With(fields map[string]any) Logger {
	return &FluentLogger{client: f.client, level: f.level, base: merge(f.base, fields)}
}

func (f *FluentLogger) Debug(msg string, fields map[string]any) { f.post(Debug, msg, fields) }
func (f *FluentLogger) Info(msg string, fields map[string]any)  { f.post(Info, msg, fields) }
func (f *FluentLogger) Warn(msg string, fields map[string]any)  { f.post(Warn, msg, fields) }
func (f *FluentLogger) Error(msg string, fields map[string]any) { f.post(Error, msg, fields) }

func (f *FluentLogger) post(lvl Level, msg string, fields map[string]any) {
	if lvl < f.level {
		return
	}
	data := merge(f.base, fields)
	for k, v := range data {
		if err, ok := v.(error); ok {
			data[k] = err.Error()
		}
	}
	data["level"] = lvl.String()
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	_ = f.client.Post(lvl.String(), data)
}

func (f *FluentLogger) Close() error {
	return f.client.Close()
}

func merge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
