package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.VK.APIVersion != "5.154" {
		t.Errorf("Expected default API version to be 5.154, got %s", config.VK.APIVersion)
	}

	if config.Backup.AlbumID != "profile" {
		t.Errorf("Expected default album id to be profile, got %s", config.Backup.AlbumID)
	}

	if config.Backup.PhotoCount != 5 {
		t.Errorf("Expected default photo count to be 5, got %d", config.Backup.PhotoCount)
	}

	if config.Backup.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout to be 30s, got %v", config.Backup.RequestTimeout)
	}

	if config.Output.ReportsDirectory != "./app/reports" {
		t.Errorf("Expected default reports directory to be ./app/reports, got %s", config.Output.ReportsDirectory)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("VKBACKUP_VK_TOKEN", "vk-test-token")
	os.Setenv("VKBACKUP_DISK_TOKEN", "disk-test-token")
	os.Setenv("VKBACKUP_VK_API_VERSION", "5.199")
	os.Setenv("VKBACKUP_PHOTO_COUNT", "12")
	os.Setenv("VKBACKUP_REPORTS_DIR", "/tmp/test-reports")
	os.Setenv("VKBACKUP_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("VKBACKUP_VK_TOKEN")
		os.Unsetenv("VKBACKUP_DISK_TOKEN")
		os.Unsetenv("VKBACKUP_VK_API_VERSION")
		os.Unsetenv("VKBACKUP_PHOTO_COUNT")
		os.Unsetenv("VKBACKUP_REPORTS_DIR")
		os.Unsetenv("VKBACKUP_LOG_LEVEL")
	}()

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.VK.AccessToken != "vk-test-token" {
		t.Errorf("Expected VK token to be vk-test-token, got %s", config.VK.AccessToken)
	}

	if config.Disk.AccessToken != "disk-test-token" {
		t.Errorf("Expected Disk token to be disk-test-token, got %s", config.Disk.AccessToken)
	}

	if config.VK.APIVersion != "5.199" {
		t.Errorf("Expected API version to be 5.199, got %s", config.VK.APIVersion)
	}

	if config.Backup.PhotoCount != 12 {
		t.Errorf("Expected photo count to be 12, got %d", config.Backup.PhotoCount)
	}

	if config.Output.ReportsDirectory != "/tmp/test-reports" {
		t.Errorf("Expected reports directory to be /tmp/test-reports, got %s", config.Output.ReportsDirectory)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
vk:
  app_id: "12345"
  access_token: "file-vk-token"
disk:
  access_token: "file-disk-token"
backup:
  album_id: "saved"
  photo_count: 7
logging:
  level: "warn"
`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if config.VK.AppID != "12345" {
		t.Errorf("Expected app id to be 12345, got %s", config.VK.AppID)
	}

	if config.VK.AccessToken != "file-vk-token" {
		t.Errorf("Expected VK token to be file-vk-token, got %s", config.VK.AccessToken)
	}

	if config.Backup.AlbumID != "saved" {
		t.Errorf("Expected album id to be saved, got %s", config.Backup.AlbumID)
	}

	if config.Backup.PhotoCount != 7 {
		t.Errorf("Expected photo count to be 7, got %d", config.Backup.PhotoCount)
	}

	// Values the file does not mention keep their defaults
	if config.VK.APIVersion != "5.154" {
		t.Errorf("Expected API version to keep its default, got %s", config.VK.APIVersion)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.VK.AccessToken = "vk-token"
		c.Disk.AccessToken = "disk-token"
		return c
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("Expected valid config to pass validation, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing VK token", func(c *Config) { c.VK.AccessToken = "" }},
		{"missing Disk token", func(c *Config) { c.Disk.AccessToken = "" }},
		{"missing API version", func(c *Config) { c.VK.APIVersion = "" }},
		{"empty album id", func(c *Config) { c.Backup.AlbumID = "" }},
		{"non-positive photo count", func(c *Config) { c.Backup.PhotoCount = 0 }},
		{"non-positive timeout", func(c *Config) { c.Backup.RequestTimeout = 0 }},
		{"empty reports directory", func(c *Config) { c.Output.ReportsDirectory = "" }},
		{"bogus log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.VK.AccessToken = "original"

	config.MergeCommandLineFlags(map[string]interface{}{
		"vk-token":   "flag-token",
		"album":      "271290102",
		"count":      25,
		"log-level":  "debug",
		"disk-token": "",
	})

	if config.VK.AccessToken != "flag-token" {
		t.Errorf("Expected flag to override VK token, got %s", config.VK.AccessToken)
	}

	if config.Backup.AlbumID != "271290102" {
		t.Errorf("Expected flag to override album id, got %s", config.Backup.AlbumID)
	}

	if config.Backup.PhotoCount != 25 {
		t.Errorf("Expected flag to override photo count, got %d", config.Backup.PhotoCount)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected flag to override log level, got %s", config.Logging.Level)
	}

	// Empty flag values are ignored
	if config.Disk.AccessToken != "" {
		t.Errorf("Expected empty disk-token flag to be ignored, got %s", config.Disk.AccessToken)
	}
}
