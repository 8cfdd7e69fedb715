package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/babarot/nctrash/internal/config"
	"github.com/babarot/nctrash/internal/env"
	"github.com/babarot/nctrash/internal/trash"
	"github.com/babarot/nctrash/internal/trash/core"
	"github.com/babarot/nctrash/internal/trash/webdav"
	"github.com/babarot/nctrash/internal/ui"
	"github.com/babarot/nctrash/internal/utils/debug"
	"github.com/babarot/nctrash/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Threads    int    `short:"t" long:"threads" description:"Number of items restored in parallel (default: core.threads, 20)"`
	MaxRetries int    `long:"max-retries" description:"Retries per item after the first failure, 0 retries forever (default: core.retry.max_retries)"`
	DryRun     bool   `long:"dry-run" description:"List the items that would be restored and exit"`
	Progress   string `long:"progress" description:"How to report progress" choice:"auto" choice:"bar" choice:"plain" choice:"none"`
	Config     string `long:"config" description:"Path to config file" default:""`

	Args struct {
		URL      string `positional-arg-name:"url" description:"Server root, e.g. https://cloud.example.com"`
		User     string `positional-arg-name:"user" description:"Account whose trash is restored"`
		Password string `positional-arg-name:"password" description:"Account password (or $NCTRASH_PASSWORD)"`
	} `positional-args:"yes"`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	stdout  io.Writer
	logger  *slog.Logger
	manager *trash.Manager
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, v, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, v Version, args []string, stdout, stderr io.Writer) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] <url> <user> <password>"
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(stdout, v.Print())
		return nil
	}

	// reports config loading until the configured logger exists
	boot := log.New(log.UseOutput(stderr), log.UseAttrs("run_id", runID()))

	cfg, err := config.Parse(opt.Config, boot)
	if err != nil {
		return err
	}

	switch opt.Meta.Debug {
	case "live":
		return debug.Logs(stdout, boot, env.NCTRASH_LOG_PATH, cfg.Core.Logging, true)
	case "full":
		return debug.Logs(stdout, boot, env.NCTRASH_LOG_PATH, cfg.Core.Logging, false)
	}

	if err := applyOptions(&cfg, &opt, parser); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	defer logger.Debug("run finished")
	logger.Debug("run started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)
	logger.Debug("config loaded", "config", cfg.String())

	initial, ceiling, err := cfg.Core.Retry.Intervals()
	if err != nil {
		return err
	}

	storage, err := webdav.NewStorage(&core.Config{
		BaseURL:     opt.Args.URL,
		User:        opt.Args.User,
		Password:    opt.Args.Password,
		Concurrency: cfg.Core.Threads,
		Timeout:     cfg.Core.TimeoutDuration(),
		UserAgent:   v.AppName + "/" + v.Version,
	}, logger)
	if err != nil {
		return err
	}

	var progress trash.Progress = ui.NewProgress(cfg.UI.Progress, stdout, logger)
	if opt.DryRun {
		progress = nil
	}

	manager, err := trash.NewManager(storage,
		trash.WithConcurrency(cfg.Core.Threads),
		trash.WithRetryPolicy(core.RetryPolicy{
			MaxRetries:      cfg.Core.Retry.MaxRetries,
			InitialInterval: initial,
			MaxInterval:     ceiling,
		}),
		trash.WithFilter(trash.FilterOptions{Exclude: cfg.Restore.Exclude, Logger: logger}),
		trash.WithProgress(progress),
		trash.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize trash manager: %w", err)
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		stdout:  stdout,
		logger:  logger,
		manager: manager,
	}

	if err := cli.Run(ctx); err != nil {
		logger.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c CLI) Run(ctx context.Context) error {
	if c.option.DryRun {
		return c.DryRun(ctx)
	}
	return c.Restore(ctx)
}

// applyOptions validates the positionals and lays the flags that were
// given on top of the config file values.
func applyOptions(cfg *config.Config, opt *Option, parser *flags.Parser) error {
	if opt.Args.Password == "" {
		opt.Args.Password = env.NCTRASH_PASSWORD
	}
	switch {
	case opt.Args.URL == "":
		return errors.New("url is required")
	case opt.Args.User == "":
		return errors.New("user is required")
	case opt.Args.Password == "":
		return errors.New("password is required (argument or $NCTRASH_PASSWORD)")
	}

	if o := parser.FindOptionByLongName("threads"); o != nil && o.IsSet() {
		cfg.Core.Threads = opt.Threads
	}
	if o := parser.FindOptionByLongName("max-retries"); o != nil && o.IsSet() {
		cfg.Core.Retry.MaxRetries = opt.MaxRetries
	}
	if opt.Progress != "" {
		cfg.UI.Progress = opt.Progress
	}
	return config.Validate(*cfg)
}

// newLogger builds the run logger: lifecycle records on stderr and, when
// logging is enabled, everything at the configured level in the rotating
// debug log.
func newLogger(cfg config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	level := log.InfoLevel
	if cfg.Restore.Verbose {
		level = log.DebugLevel
	}
	opts := []log.Option{
		log.UseOutput(stderr),
		log.UseLevel(level),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.Kitchen),
		log.UseAttrs("run_id", runID()),
	}

	closeLog := func() {}
	if cfg.Core.Logging.Enabled {
		w, err := log.NewRotateWriter(env.NCTRASH_LOG_PATH, cfg.Core.Logging)
		if err != nil {
			return nil, nil, fmt.Errorf("open debug log: %w", err)
		}
		opts = append(opts, log.UseFile(w, log.ParseLevel(cfg.Core.Logging.Level)))
		closeLog = func() { _ = w.Close() }
	}
	return log.New(opts...), closeLog, nil
}
