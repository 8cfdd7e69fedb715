package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/nctrash/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/k0kubun/pp/v3"
	"github.com/k1LoW/duration"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Core    Core    `yaml:"core"`
	Restore Restore `yaml:"restore"`
	UI      UI      `yaml:"ui"`
}

type Core struct {
	Threads int           `yaml:"threads" validate:"min=1"`
	Timeout string        `yaml:"timeout" validate:"validDuration"`
	Retry   RetryConfig   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
}

// RetryConfig controls how a single failed restore is retried.
// MaxRetries of zero retries forever.
type RetryConfig struct {
	MaxRetries      int    `yaml:"max_retries" validate:"min=0"`
	InitialInterval string `yaml:"initial_interval" validate:"required,validDuration"`
	MaxInterval     string `yaml:"max_interval" validate:"required,validDuration"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"min=0"`
}

type Restore struct {
	Verbose bool          `yaml:"verbose"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type ExcludeConfig struct {
	Names    []string `yaml:"names"`
	Patterns []string `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string `yaml:"globs" validate:"dive,validGlob"`
}

type UI struct {
	Progress    string `yaml:"progress" validate:"required,oneof=auto bar plain none"`
	ExitMessage string `yaml:"exit_message"`
}

// TimeoutDuration returns the per-request timeout, zero meaning none
func (c Core) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := duration.Parse(c.Timeout)
	return d
}

// Intervals returns the parsed backoff intervals
func (r RetryConfig) Intervals() (initial, ceiling time.Duration, err error) {
	initial, err = duration.Parse(r.InitialInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("retry.initial_interval: %w", err)
	}
	ceiling, err = duration.Parse(r.MaxInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("retry.max_interval: %w", err)
	}
	return initial, ceiling, nil
}

func (c Config) String() string {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p.Sprint(c)
}

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.NCTRASH_CONFIG_PATH,
		defaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

type parser struct {
	validate *validator.Validate
	logger   *slog.Logger
}

func newParser(logger *slog.Logger) parser {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validGlob", validateGlob)

	return parser{validate: validate, logger: logger}
}

func defaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (p parser) ensureConfigFile(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		p.logger.Warn("creating directory as it does not exist", "dir", dir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		p.logger.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.WriteString(defaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := p.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against the struct tags
func (p parser) Validate(cfg Config) error {
	if err := p.validate.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("validation error: field %s, %v is invalid", errs[0].Namespace(), errs[0].Value())
		}
		return err
	}
	return nil
}

// Validate checks a config built in code, e.g. after CLI overrides
func Validate(cfg Config) error {
	return newParser(nil).Validate(cfg)
}

// Parse reads the config at path. An empty path means the default location,
// which is created with default contents when missing.
// Parsing happens before the run logger exists, so the caller passes
// the logger to report through.
func Parse(path string, logger *slog.Logger) (Config, error) {
	p := newParser(logger)

	if path == "" {
		path = env.NCTRASH_CONFIG_PATH
		if err := p.ensureConfigFile(path); err != nil {
			return Config{}, parsingError{err: configError{configPath: path, err: err}}
		}
	}
	p.logger.Debug("config file found", "config-file", path)

	cfg, err := p.readConfigFile(path)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}
