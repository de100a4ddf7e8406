package gologger

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/interfaces"
)

// Config mirrors the logging section of the leadform config. Blank Level
// and Format mean info and console.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named modules. Short names such as
	// "server" are expanded to "leadform.server".
	Focus []string
}

// Provider hands out go-logger children named after leadform modules.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root go-logger instance.
func NewProvider(cfg Config) (*Provider, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(
		glog.WithName(logging.RootModule),
		glog.WithLevel(level),
		format,
		glog.WithAddSource(cfg.AddSource),
	)

	var focus []string
	for _, name := range cfg.Focus {
		if strings.TrimSpace(name) != "" {
			focus = append(focus, ModuleName(name))
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the logger for module, qualified with ModuleName.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	return wrap(p.root.GetLogger(ModuleName(module)))
}

// ModuleName qualifies name under the leadform root module. Blank names
// resolve to the root module itself.
func ModuleName(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "" || name == logging.RootModule:
		return logging.RootModule
	case strings.HasPrefix(name, logging.RootModule+"."):
		return name
	default:
		return logging.RootModule + "." + name
	}
}

func parseLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace, nil
	case "debug":
		return glog.Debug, nil
	case "", "info":
		return glog.Info, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	case "fatal":
		return glog.Fatal, nil
	}
	return "", fmt.Errorf("logging: unsupported level %q", level)
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		return glog.WithLoggerTypeConsole(), nil
	case "json":
		return glog.WithLoggerTypeJSON(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	}
	return nil, fmt.Errorf("logging: unsupported format %q", format)
}

// adapter narrows a glog.Logger to interfaces.Logger.
type adapter struct {
	inner glog.Logger
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields copies fields so later edits by the caller do not leak into
// the child logger.
func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	with, ok := l.inner.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return l
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return wrap(with.WithFields(copied))
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}
