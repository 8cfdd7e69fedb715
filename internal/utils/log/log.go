package log

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
	slogmulti "github.com/samber/slog-multi"
)

var (
	// singleton instances
	defaultStylesOnce sync.Once
	defaultStyles     atomic.Pointer[Styles]
)

// initializeStyles creates and initializes the default styles
func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(LogLevelString(ls.level))
		if len(levelStr) < ls.maxWidth {
			levelStr = levelStr + strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// DefaultStyles returns the initialized styles with all levels including Important
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		styles := initializeStyles()
		defaultStyles.Store(styles)
	})
	return defaultStyles.Load()
}

// New creates a new logger with the given options.
// When a file is configured, records are fanned out to the console handler
// and to a timestamped handler writing to the file.
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	console := charmlog.NewWithOptions(o.Writer, o.Options)
	console.SetStyles(o.Styles)

	var handler slog.Handler = console
	if o.File != nil {
		file := charmlog.NewWithOptions(o.File, charmlog.Options{
			Level:           o.FileLevel,
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       charmlog.LogfmtFormatter,
		})
		handler = slogmulti.Fanout(console, file)
	}

	logger := slog.New(handler)
	if len(o.Attrs) > 0 {
		logger = logger.With(o.Attrs...)
	}

	return logger
}

// Reset resets all global state (useful for testing)
func Reset() {
	defaultStylesOnce = sync.Once{}
	defaultStyles.Store(nil)
}
