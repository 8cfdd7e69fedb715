package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/babarot/nctrash/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Logs prints the debug log at path, following new entries when live is set
func Logs(w io.Writer, logger *slog.Logger, path string, cfg config.LoggingConfig, live bool) error {
	if live {
		return tailLiveLogs(w, logger, path, cfg)
	}
	return showExistingLogs(w, path, cfg)
}

func tailLiveLogs(w io.Writer, logger *slog.Logger, path string, cfg config.LoggingConfig) error {
	if !cfg.Enabled {
		return errors.New("logging is not enabled in config: enable logging in config for live debugging")
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("log file does not exist: run a restore with logging enabled first")
		}
		return err
	}
	logger.Info("live tail started", "path", path)

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}
	return nil
}

func showExistingLogs(w io.Writer, path string, cfg config.LoggingConfig) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !cfg.Enabled {
			return errors.New("logging is not enabled in config: enable logging to create log files")
		}
		return errors.New("no log file exists yet: run a restore first")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
