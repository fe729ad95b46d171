// File: internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "marker"
	configFileName = "config.yaml"
)

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir    string // Base directory for all config files
	ConfigFile string // Path to the config file
	DataDir    string // Directory for application data
	DBFile     string // Path to the recent documents database
	LogDir     string // Directory for log files
	SocketPath string // Default IPC socket
	LockFile   string // Single-instance lock
}

// Config holds all application configuration
type Config struct {
	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Invocation bridge exposed to external front ends
	IPC IPCConfig `yaml:"ipc"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Editor window options
	Editor EditorConfig `yaml:"editor"`

	// Resolved at load time, never persisted
	SystemPaths ConfigPaths `yaml:"-"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level             string `yaml:"level"`
	Format            string `yaml:"format"` // "console" or "json"
	EnableFileLogging bool   `yaml:"enable_file_logging"`
}

// IPCConfig holds the IPC server settings
type IPCConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SocketPath string `yaml:"socket_path"` // empty means the platform default
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	DBPath    string `yaml:"db_path"` // empty means <data_dir>/marker.db
	MaxRecent int    `yaml:"max_recent"`
}

// EditorConfig holds GUI settings
type EditorConfig struct {
	WindowWidth  float32  `yaml:"window_width"`
	WindowHeight float32  `yaml:"window_height"`
	Extensions   []string `yaml:"extensions"` // file dialog filter
	WelcomeText  string   `yaml:"welcome_text"`
	ShowPreview  bool     `yaml:"show_preview"`
}

// Swapped in tests.
var (
	getConfigDir = defaultConfigDir
	getDataDir   = defaultDataDir
)

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("MARKER_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(configDir, "Marker"), nil
	case "darwin":
		return filepath.Join(configDir, "com.berrythewa.marker"), nil
	default: // Linux and others
		return filepath.Join(configDir, appName), nil
	}
}

func defaultDataDir() (string, error) {
	if dir := os.Getenv("MARKER_DATA_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		if appData, err := os.UserConfigDir(); err == nil {
			return filepath.Join(appData, "Marker", "Data"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", "Marker"), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Marker"), nil
	default: // Linux and others
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return filepath.Join(xdgDataHome, appName), nil
		}
		return filepath.Join(homeDir, ".local", "share", appName), nil
	}
}

// GetConfigPaths returns the platform-specific paths, creating the
// directories that must exist.
func GetConfigPaths() (*ConfigPaths, error) {
	baseDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dir: %w", err)
	}
	dataDir, err := getDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	socketPath := filepath.Join(dataDir, appName+".sock")
	if runtime.GOOS == "linux" {
		if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
			socketPath = filepath.Join(runtimeDir, appName+".sock")
		}
	}

	paths := &ConfigPaths{
		BaseDir:    baseDir,
		ConfigFile: filepath.Join(baseDir, configFileName),
		DataDir:    dataDir,
		DBFile:     filepath.Join(dataDir, appName+".db"),
		LogDir:     filepath.Join(dataDir, "logs"),
		SocketPath: socketPath,
		LockFile:   filepath.Join(dataDir, appName+".lock"),
	}

	for _, dir := range []string{paths.BaseDir, paths.DataDir, paths.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:             "info",
			Format:            "console",
			EnableFileLogging: false,
		},
		IPC: IPCConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			MaxRecent: 20,
		},
		Editor: EditorConfig{
			WindowWidth:  1000,
			WindowHeight: 700,
			Extensions:   []string{".md", ".markdown"},
			WelcomeText:  "# Welcome to Markdown Editor\n\nStart editing your markdown file...",
			ShowPreview:  true,
		},
	}
}

// Load loads the configuration from configPath, or from the default location
// when configPath is empty. A missing file is created with defaults.
func Load(configPath string) (*Config, error) {
	paths, err := GetConfigPaths()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = paths.ConfigFile
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(cfg)
	cfg.SystemPaths = *paths
	cfg.SystemPaths.ConfigFile = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be repaired silently.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.Log.Format)
	}
	if c.Storage.MaxRecent < 0 {
		return fmt.Errorf("storage.max_recent must not be negative")
	}
	for _, ext := range c.Editor.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("editor extension %q must start with a dot", ext)
		}
	}
	return nil
}

// SocketPath returns the configured IPC socket or the platform default.
func (c *Config) SocketPath() string {
	if c.IPC.SocketPath != "" {
		return c.IPC.SocketPath
	}
	return c.SystemPaths.SocketPath
}

// DBPath returns the configured database path or the default one.
func (c *Config) DBPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return c.SystemPaths.DBFile
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	if val := os.Getenv("MARKER_SOCKET"); val != "" {
		config.IPC.SocketPath = val
	}
	if val := os.Getenv("MARKER_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("MARKER_IPC_ENABLED"); val != "" {
		config.IPC.Enabled = val == "true"
	}
}
