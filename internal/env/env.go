package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	NCTRASH_CONFIG_PATH string

	NCTRASH_LOG_PATH string

	// NCTRASH_PASSWORD is read when the password positional is omitted
	NCTRASH_PASSWORD string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	NCTRASH_PASSWORD = os.Getenv("NCTRASH_PASSWORD")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	if e := os.Getenv("NCTRASH_CONFIG_PATH"); e != "" {
		NCTRASH_CONFIG_PATH = e
	} else {
		NCTRASH_CONFIG_PATH = filepath.Join(baseDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), "nctrash", "config.yaml")
	}

	if e := os.Getenv("NCTRASH_LOG_PATH"); e != "" {
		NCTRASH_LOG_PATH = e
	} else {
		NCTRASH_LOG_PATH = filepath.Join(baseDir("XDG_DATA_HOME", defaultXDGDataDirname), "nctrash", "debug.log")
	}
}

func baseDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(homeDir, fallback)
}
