package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName names the XDG directories and the env prefix
const AppName = "ytsubs"

// Config holds application settings
type Config struct {
	// User configurable settings
	YTDLPPath       string
	YTDLPArgs       []string
	AutoInstall     bool
	ScratchDir      string
	DownloadTimeout time.Duration
	LogLevel        string
	LogFile         bool
	Transport       string
	Port            int
	AllowedOrigins  []string
	Verbose         bool
	Quiet           bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
	LogPath   string
}

//go:embed config.toml
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// NewViper returns a viper instance with defaults, config file locations
// and the YTSUBS_ environment prefix set up
func NewViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("ytdlp_path", "")
	v.SetDefault("ytdlp_args", "")
	v.SetDefault("auto_install", false)
	v.SetDefault("scratch_dir", "") // empty uses the platform temp dir
	v.SetDefault("download_timeout", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", false)
	v.SetDefault("transport", "stdio")
	v.SetDefault("port", 8080)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the config file, if any, and builds a Config from v
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cacheDir := filepath.Join(xdg.CacheHome, AppName)
	config := &Config{
		YTDLPPath:       v.GetString("ytdlp_path"),
		YTDLPArgs:       SplitArgs(v.GetString("ytdlp_args")),
		AutoInstall:     v.GetBool("auto_install"),
		ScratchDir:      v.GetString("scratch_dir"),
		DownloadTimeout: v.GetDuration("download_timeout"),
		LogLevel:        v.GetString("log_level"),
		LogFile:         v.GetBool("log_file"),
		Transport:       v.GetString("transport"),
		Port:            v.GetInt("port"),
		AllowedOrigins:  v.GetStringSlice("allowed_origins"),
		Verbose:         v.GetBool("verbose"),
		Quiet:           v.GetBool("quiet"),

		ConfigDir: filepath.Join(xdg.ConfigHome, AppName),
		CacheDir:  cacheDir,
		LogPath:   filepath.Join(cacheDir, "mcp.log"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfigDir returns the XDG config directory for the application
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unsupported transport: %s (supported: stdio, http)", c.Transport)
	}

	if c.Transport == "http" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.DownloadTimeout < 0 {
		return fmt.Errorf("download_timeout must not be negative: %s", c.DownloadTimeout)
	}

	if c.ScratchDir != "" && !FileExists(c.ScratchDir) {
		return fmt.Errorf("scratch_dir does not exist: %s", c.ScratchDir)
	}

	return nil
}

// ServiceOptions translates the config into transcript service options
func (c *Config) ServiceOptions() []ServiceOption {
	return []ServiceOption{
		WithScratchRoot(c.ScratchDir),
		WithStartupArgs(c.YTDLPArgs),
		WithDownloadTimeout(c.DownloadTimeout),
	}
}
