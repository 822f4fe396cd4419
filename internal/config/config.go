package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/clipstash/clipstash/pkg/utils"
)

// Paths holds the platform-specific locations the application uses.
type Paths struct {
	ConfigDir   string `json:"config_dir" yaml:"config_dir"`     // directory of the active config file
	ConfigFile  string `json:"config_file" yaml:"config_file"`   // path to config.yaml
	DataDir     string `json:"data_dir" yaml:"data_dir"`         // history log, metrics, logs
	HistoryFile string `json:"history_file" yaml:"history_file"` // path to the history log
	MetricsFile string `json:"metrics_file" yaml:"metrics_file"` // path to the metrics database
	LogDir      string `json:"log_dir" yaml:"log_dir"`           // directory for log files
}

// Config holds all application configuration
type Config struct {
	// General settings
	InstanceID string `json:"instance_id" yaml:"instance_id"`
	DeviceName string `json:"device_name" yaml:"device_name"`

	// History store limits
	History HistoryConfig `json:"history" yaml:"history"`

	// Clipboard monitoring options
	Monitor MonitorConfig `json:"monitor" yaml:"monitor"`

	// Capture metrics
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Logging configuration
	Log LogConfig `json:"log" yaml:"log"`

	// System paths configuration
	SystemPaths Paths `json:"system_paths" yaml:"system_paths"`
}

// HistoryConfig bounds the history log.
type HistoryConfig struct {
	FilePath      string `json:"file_path" yaml:"file_path"`
	MaxEntries    int    `json:"max_entries" yaml:"max_entries"`
	WarnThreshold int    `json:"warn_threshold" yaml:"warn_threshold"`
}

// MonitorConfig tunes the clipboard poller.
type MonitorConfig struct {
	PollingIntervalMs int64 `json:"polling_interval_ms" yaml:"polling_interval_ms"`
}

// PollingInterval returns the poll interval as a duration.
func (m MonitorConfig) PollingInterval() time.Duration {
	return time.Duration(m.PollingIntervalMs) * time.Millisecond
}

// MetricsConfig controls the capture counter store.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path" yaml:"db_path"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	EnableFileLogging bool   `json:"enable_file_logging" yaml:"enable_file_logging"`
	Format            string `json:"format" yaml:"format"` // "json" or "text"
}

// GetPaths returns the platform-specific application paths, creating the
// directories if they do not exist. CLIPSTASH_CONFIG_DIR and
// CLIPSTASH_DATA_DIR override the platform defaults.
func GetPaths() (*Paths, error) {
	configDir := os.Getenv("CLIPSTASH_CONFIG_DIR")
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(base, "Clipstash")
		case "darwin":
			configDir = filepath.Join(base, "com.clipstash.clipstash")
		default: // Linux and others
			configDir = filepath.Join(base, "clipstash")
		}
	}

	dataDir := os.Getenv("CLIPSTASH_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		switch runtime.GOOS {
		case "windows":
			if appData, err := os.UserConfigDir(); err == nil {
				dataDir = filepath.Join(appData, "Clipstash", "Data")
			} else {
				dataDir = filepath.Join(homeDir, "AppData", "Local", "Clipstash")
			}
		case "darwin":
			dataDir = filepath.Join(homeDir, "Library", "Application Support", "Clipstash")
		default: // Linux and others
			if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
				dataDir = filepath.Join(xdgDataHome, "clipstash")
			} else {
				dataDir = filepath.Join(homeDir, ".clipstash")
			}
		}
	}

	paths := &Paths{
		ConfigDir:   configDir,
		ConfigFile:  filepath.Join(configDir, "config.yaml"),
		DataDir:     dataDir,
		HistoryFile: filepath.Join(dataDir, "history.txt"),
		MetricsFile: filepath.Join(dataDir, "metrics.db"),
		LogDir:      filepath.Join(dataDir, "logs"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	paths, _ := GetPaths() // fall back to empty paths on error
	if paths == nil {
		paths = &Paths{}
	}

	return &Config{
		InstanceID: uuid.New().String(),
		DeviceName: utils.GetHostname(),
		History: HistoryConfig{
			FilePath:      paths.HistoryFile,
			MaxEntries:    1000,
			WarnThreshold: 900,
		},
		Monitor: MonitorConfig{
			PollingIntervalMs: 500,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			DBPath:  paths.MetricsFile,
		},
		Log: LogConfig{
			EnableFileLogging: true,
			Format:            "text",
		},
		SystemPaths: *paths,
	}
}

// Load reads the configuration from the specified file, or from the
// platform default location when path is empty. A missing file is
// created with defaults. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		paths, err := GetPaths()
		if err != nil {
			return nil, err
		}
		configPath = paths.ConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.Save(configPath); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			overrideFromEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Save writes the configuration to the specified file
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

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	if val := os.Getenv("CLIPSTASH_INSTANCE_ID"); val != "" {
		config.InstanceID = val
	}
	if val := os.Getenv("CLIPSTASH_DEVICE_NAME"); val != "" {
		config.DeviceName = val
	}
	if val := os.Getenv("CLIPSTASH_HISTORY_FILE"); val != "" {
		config.History.FilePath = val
	}
	if val := os.Getenv("CLIPSTASH_MAX_ENTRIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.History.MaxEntries = n
		}
	}
	if val := os.Getenv("CLIPSTASH_WARN_THRESHOLD"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.History.WarnThreshold = n
		}
	}
	if val := os.Getenv("CLIPSTASH_POLL_INTERVAL_MS"); val != "" {
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Monitor.PollingIntervalMs = ms
		}
	}
	if val := os.Getenv("CLIPSTASH_DATA_DIR"); val != "" {
		config.SystemPaths.DataDir = val
	}
}
