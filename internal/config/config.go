package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures quoter's runtime settings.
type Config struct {
	DataDir     string
	SyncURL     string // empty disables sync
	PollEvery   time.Duration
	LogFile     string
	ServeAddr   string // listen address for `quoter serve`
	SourcePath  string // resolved config file path, informational
	FileMissing bool
}

const (
	defaultConfigPath  = "~/.config/quoter/config.toml"
	defaultDataDir     = "~/.local/share/quoter"
	defaultPollSeconds = 30
	defaultServeAddr   = "127.0.0.1:7489"
	defaultLogName     = "quoter.log"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:    mustExpand(defaultDataDir),
		PollEvery:  defaultPollSeconds * time.Second,
		ServeAddr:  defaultServeAddr,
		SourcePath: resolved,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.FileMissing = true
			cfg.LogFile = filepath.Join(cfg.DataDir, defaultLogName)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir     string `toml:"data_dir"`
		SyncURL     string `toml:"sync_url"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
		ServeAddr   string `toml:"serve_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	cfg.SyncURL = strings.TrimSpace(raw.SyncURL)
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	if addr := strings.TrimSpace(raw.ServeAddr); addr != "" {
		cfg.ServeAddr = addr
	}

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, defaultLogName)
	} else {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}

	return cfg, nil
}

// SyncEnabled reports whether a sync endpoint is configured.
func (c Config) SyncEnabled() bool {
	return strings.TrimSpace(c.SyncURL) != ""
}

// ExportPath returns the default export location inside the data directory.
func (c Config) ExportPath(name string) string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/" + name)
	}
	return filepath.Join(c.DataDir, name)
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
