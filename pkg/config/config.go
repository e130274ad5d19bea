package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the backup tool
type Config struct {
	// VK API credentials and settings
	VK VKConfig `yaml:"vk" json:"vk"`

	// Yandex.Disk API credentials
	Disk DiskConfig `yaml:"disk" json:"disk"`

	// Backup run settings
	Backup BackupConfig `yaml:"backup" json:"backup"`

	// Output directories
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// VKConfig holds VK-specific configuration
type VKConfig struct {
	AppID       string `yaml:"app_id" json:"app_id"`
	AccessToken string `yaml:"access_token" json:"access_token"`
	APIVersion  string `yaml:"api_version" json:"api_version"`
}

// DiskConfig holds Yandex.Disk-specific configuration
type DiskConfig struct {
	AccessToken string `yaml:"access_token" json:"access_token"`
}

// BackupConfig holds settings for a single backup run
type BackupConfig struct {
	AlbumID        string        `yaml:"album_id" json:"album_id"`
	PhotoCount     int           `yaml:"photo_count" json:"photo_count"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	ReportsDirectory string `yaml:"reports_directory" json:"reports_directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	Directory string `yaml:"directory" json:"directory"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		VK: VKConfig{
			APIVersion: "5.154",
		},
		Backup: BackupConfig{
			AlbumID:        "profile",
			PhotoCount:     5,
			RequestTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			ReportsDirectory: "./app/reports",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Directory: "./app/log",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if appID := os.Getenv("VKBACKUP_VK_APP_ID"); appID != "" {
		c.VK.AppID = appID
	}
	if token := os.Getenv("VKBACKUP_VK_TOKEN"); token != "" {
		c.VK.AccessToken = token
	}
	if version := os.Getenv("VKBACKUP_VK_API_VERSION"); version != "" {
		c.VK.APIVersion = version
	}
	if token := os.Getenv("VKBACKUP_DISK_TOKEN"); token != "" {
		c.Disk.AccessToken = token
	}
	if count := os.Getenv("VKBACKUP_PHOTO_COUNT"); count != "" {
		var val int
		fmt.Sscanf(count, "%d", &val)
		if val > 0 {
			c.Backup.PhotoCount = val
		}
	}
	if reportsDir := os.Getenv("VKBACKUP_REPORTS_DIR"); reportsDir != "" {
		c.Output.ReportsDirectory = reportsDir
	}
	if logDir := os.Getenv("VKBACKUP_LOG_DIR"); logDir != "" {
		c.Logging.Directory = logDir
	}
	if logLevel := os.Getenv("VKBACKUP_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		"config.yaml",
		"config.yml",
		".vkbackup.yaml",
		".vkbackup.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "vkbackup", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "vkbackup", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".vkbackup.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.VK.AccessToken == "" {
		errs = append(errs, errors.New("VK access token is required"))
	}
	if c.VK.APIVersion == "" {
		errs = append(errs, errors.New("VK API version is required"))
	}
	if c.Disk.AccessToken == "" {
		errs = append(errs, errors.New("Yandex.Disk access token is required"))
	}

	if c.Backup.AlbumID == "" {
		errs = append(errs, errors.New("album id is required"))
	}
	if c.Backup.PhotoCount <= 0 {
		errs = append(errs, errors.New("photo count must be positive"))
	}
	if c.Backup.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Output.ReportsDirectory == "" {
		errs = append(errs, errors.New("reports directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["vk-token"].(string); ok && token != "" {
		c.VK.AccessToken = token
	}
	if token, ok := flags["disk-token"].(string); ok && token != "" {
		c.Disk.AccessToken = token
	}
	if albumID, ok := flags["album"].(string); ok && albumID != "" {
		c.Backup.AlbumID = albumID
	}
	if count, ok := flags["count"].(int); ok && count > 0 {
		c.Backup.PhotoCount = count
	}
	if reportsDir, ok := flags["reports-dir"].(string); ok && reportsDir != "" {
		c.Output.ReportsDirectory = reportsDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".vkbackup.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
