// Package logging wires the per-package subsystem loggers to a shared
// backend that writes to the terminal and, optionally, a rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
	"github.com/linuxmatters/voiceactor/internal/config"
)

// Subsystem tags.
const (
	SubsysMain      = "MAIN"
	SubsysAudio     = "AUDO"
	SubsysDevice    = "DEVC"
	SubsysPlayback  = "PLAY"
	SubsysPortAudio = "PAUD"
)

// Subsystems lists every known subsystem tag.
var Subsystems = []string{SubsysMain, SubsysAudio, SubsysDevice, SubsysPlayback, SubsysPortAudio}

// Backend fans log lines out to the terminal writer and the log file.
type Backend struct {
	mu              sync.Mutex
	stdOut          io.Writer
	logRotator      *rotator.Rotator
	bknd            *slog.Backend
	defaultLogLevel slog.Level
	logLevels       map[string]slog.Level
	loggers         map[string]slog.Logger
}

// New builds a backend. level is either a single level ("debug") or a
// comma-separated list mixing a default level with subsys=level overrides
// ("info,PLAY=trace"). logFile may be empty.
func New(logFile, level string, stdOut io.Writer) (*Backend, error) {
	b := &Backend{
		stdOut:          stdOut,
		defaultLogLevel: slog.LevelInfo,
		logLevels:       make(map[string]slog.Level),
		loggers:         make(map[string]slog.Logger),
	}
	if err := b.parseLevels(level); err != nil {
		return nil, err
	}

	if logFile != "" {
		logDir, _ := filepath.Split(logFile)
		if logDir != "" {
			if err := os.MkdirAll(logDir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		r, err := rotator.New(logFile, config.LogFileThreshold, false, config.LogFileMaxRolls)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		b.logRotator = r
	}

	b.bknd = slog.NewBackend(b)
	return b, nil
}

func (b *Backend) parseLevels(s string) error {
	if s == "" {
		return nil
	}
	for _, v := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(v), "=")
		switch len(fields) {
		case 1:
			level, ok := slog.LevelFromString(fields[0])
			if !ok {
				return fmt.Errorf("unknown log level %q", fields[0])
			}
			b.defaultLogLevel = level
		case 2:
			level, ok := slog.LevelFromString(fields[1])
			if !ok {
				return fmt.Errorf("unknown log level %q for subsystem %s", fields[1], fields[0])
			}
			b.logLevels[strings.ToUpper(fields[0])] = level
		default:
			return fmt.Errorf("unable to parse %q as subsys=level log level string", v)
		}
	}
	return nil
}

func (b *Backend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stdOut != nil {
		b.stdOut.Write(p)
	}
	if b.logRotator != nil {
		b.logRotator.Write(p)
	}
	return len(p), nil
}

// SetStdout redirects terminal output; nil silences it. The log file, if
// any, keeps receiving every line.
func (b *Backend) SetStdout(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stdOut = w
}

// Logger returns the logger for a subsystem, creating it on first use.
func (b *Backend) Logger(subsys string) slog.Logger {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.loggers[subsys]; ok {
		return l
	}

	l := b.bknd.Logger(subsys)
	if level, ok := b.logLevels[subsys]; ok {
		l.SetLevel(level)
	} else {
		l.SetLevel(b.defaultLogLevel)
	}
	b.loggers[subsys] = l
	return l
}

// Close flushes and closes the log file.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.logRotator == nil {
		return nil
	}
	err := b.logRotator.Close()
	b.logRotator = nil
	return err
}
