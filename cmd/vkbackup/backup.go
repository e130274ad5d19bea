package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"vkbackup/pkg/album"
	"vkbackup/pkg/auth"
	"vkbackup/pkg/backup"
	"vkbackup/pkg/config"
	"vkbackup/pkg/disk"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/report"
	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
)

var (
	// Backup command flags
	ownerID    string
	albumID    string
	photoCount int
	reportsDir string
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup [owner-id]",
	Short: "Copy a VK photo album to Yandex.Disk",
	Long: `Copy a VK user's photo album to a dated backup folder on Yandex.Disk.

Photos are named after their like counts; when two photos share a like
count the later one gets the photo timestamp appended. The run produces a
JSON report listing every upload attempt with its outcome.

The owner id, album id and photo count can be passed as flags. Missing
values are prompted for interactively when run in a terminal.`,
	Example: `  # Back up the profile album of user 12345, five photos
  vkbackup backup 12345

  # A specific album and photo count
  vkbackup backup 12345 --album 271290102 --count 20

  # Fully non-interactive
  VKBACKUP_VK_TOKEN=... VKBACKUP_DISK_TOKEN=... vkbackup backup 12345 --count 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runBackup(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringVar(&ownerID, "owner-id", "", "VK user id whose album is backed up")
	backupCmd.Flags().StringVarP(&albumID, "album", "a", "", "album id (default: profile)")
	backupCmd.Flags().IntVarP(&photoCount, "count", "n", 0, "number of photos to back up (default: 5)")
	backupCmd.Flags().StringVar(&reportsDir, "reports-dir", "", "directory for JSON reports")
}

func runBackup(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		ownerID = strings.TrimSpace(args[0])
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if albumID != "" {
		flags["album"] = albumID
	}
	if photoCount > 0 {
		flags["count"] = photoCount
	}
	if reportsDir != "" {
		flags["reports-dir"] = reportsDir
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Tokens from the system keychain fill in whatever the config and
	// environment left empty.
	if tokens := retrieveStoredTokens(); tokens != nil {
		if tokens.VKToken != "" && os.Getenv("VKBACKUP_VK_TOKEN") == "" {
			os.Setenv("VKBACKUP_VK_TOKEN", tokens.VKToken)
		}
		if tokens.DiskToken != "" && os.Getenv("VKBACKUP_DISK_TOKEN") == "" {
			os.Setenv("VKBACKUP_DISK_TOKEN", tokens.DiskToken)
		}
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("vkbackup starting")

	// Prompt for anything still missing
	if err := promptMissingInputs(cfg); err != nil {
		log.WithError(err).Error("failed to read input")
		ui.PrintError("Failed to read input", err.Error())
		os.Exit(1)
	}

	if ownerID == "" {
		ui.PrintError("Missing VK user id", "pass it as an argument or --owner-id flag")
		os.Exit(1)
	}

	ui.PrintInfo("Target user", ownerID)
	ui.PrintInfo("Album", cfg.Backup.AlbumID)
	ui.PrintInfo("Photos", fmt.Sprintf("%d", cfg.Backup.PhotoCount))

	log.WithFields(map[string]interface{}{
		"owner_id": ownerID,
		"album_id": cfg.Backup.AlbumID,
		"count":    cfg.Backup.PhotoCount,
	}).Info("starting backup run")

	// Fetch the album
	vkClient := vk.NewClient(cfg.VK.AccessToken, ownerID, cfg.Backup.RequestTimeout, log)
	vkClient.SetAPIVersion(cfg.VK.APIVersion)

	albumData, err := vkClient.GetAlbum(cfg.Backup.AlbumID)
	if err != nil {
		log.WithError(err).Error("failed to fetch album")
		ui.PrintError("Failed to fetch album", err.Error())
		os.Exit(1)
	}

	descriptors := album.BuildDownloadList(albumData, cfg.Backup.PhotoCount)
	if len(descriptors) == 0 {
		log.Warn("album has no photos to back up")
	}

	// Run the backup
	diskClient := disk.NewClient(cfg.Disk.AccessToken, cfg.Backup.RequestTimeout, log)
	runner := backup.NewRunner(diskClient, log, ui.IsQuietMode())

	backupPath := fmt.Sprintf("/backup_user-%s_%s", ownerID, time.Now().Format("2006-01-02"))
	ui.PrintHighlight("Backing up")

	rep, err := runner.Run(descriptors, backupPath)
	if err != nil {
		log.WithError(err).Error("backup run failed")
		ui.PrintError("BACKUP FAILED", err.Error())
		os.Exit(1)
	}

	// Write the report
	writer := report.NewWriter(cfg.Output.ReportsDirectory, log)
	reportPath, err := writer.Write(rep, ownerID)
	if err != nil {
		log.WithError(err).Error("failed to write report")
		ui.PrintError("Failed to write report", err.Error())
		os.Exit(1)
	}

	failed := len(rep.Entries) - rep.SucceededCount()
	if failed > 0 {
		ui.PrintWarning(fmt.Sprintf("%d of %d uploads failed, see the report", failed, len(rep.Entries)))
	}

	log.WithFields(map[string]interface{}{
		"owner_id": ownerID,
		"report":   reportPath,
	}).Info("backup completed")
	ui.PrintInfo("Report", reportPath)
	ui.PrintSuccess("Finished")
}

// promptMissingInputs asks interactively for the owner id, album id and
// photo count when they were not supplied via flags and stdin is a terminal
func promptMissingInputs(cfg *config.Config) error {
	if !ui.IsInteractive() {
		return nil
	}

	prompter := ui.NewStdinPrompter()

	if ownerID == "" {
		value, err := prompter.AskRequired("Enter VK User ID")
		if err != nil {
			return err
		}
		ownerID = value
	}

	if albumID == "" {
		value, err := prompter.Ask("Enter Album ID", cfg.Backup.AlbumID)
		if err != nil {
			return err
		}
		cfg.Backup.AlbumID = value
	}

	if photoCount == 0 {
		value, err := prompter.AskInt("Enter number of photos to back up", cfg.Backup.PhotoCount)
		if err != nil {
			return err
		}
		if value <= 0 {
			return fmt.Errorf("photo count must be positive, got %d", value)
		}
		cfg.Backup.PhotoCount = value
	}

	return nil
}

// retrieveStoredTokens loads tokens from the credential manager, if any
func retrieveStoredTokens() *auth.Tokens {
	manager, err := auth.NewManager()
	if err != nil {
		return nil
	}
	tokens, err := manager.Retrieve()
	if err != nil {
		return nil
	}
	return tokens
}
