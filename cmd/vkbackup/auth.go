package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"vkbackup/pkg/auth"
	"vkbackup/pkg/ui"
)

// authCmd groups token management subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored access tokens",
	Long: `Manage the VK and Yandex.Disk access tokens in the system keychain.

Tokens stored here are picked up automatically by 'vkbackup backup' when
the config file and environment do not provide them.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store access tokens in the system keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		runAuthSet()
		return nil
	},
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which tokens are stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		runAuthShow()
		return nil
	},
}

var authDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		runAuthDelete()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authDeleteCmd)
}

func runAuthSet() {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token manager", err.Error())
		os.Exit(1)
	}

	prompter := ui.NewStdinPrompter()

	vkToken, err := prompter.Ask("VK access token (empty to keep current)", "")
	if err != nil {
		ui.PrintError("Failed to read input", err.Error())
		os.Exit(1)
	}
	diskToken, err := prompter.Ask("Yandex.Disk access token (empty to keep current)", "")
	if err != nil {
		ui.PrintError("Failed to read input", err.Error())
		os.Exit(1)
	}

	tokens := &auth.Tokens{}
	if existing, err := manager.Retrieve(); err == nil {
		tokens = existing
	}

	if vkToken != "" {
		tokens.VKToken = strings.TrimSpace(vkToken)
	}
	if diskToken != "" {
		tokens.DiskToken = strings.TrimSpace(diskToken)
	}

	if err := manager.Store(tokens); err != nil {
		ui.PrintError("Failed to store tokens", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Tokens stored")
}

func runAuthShow() {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token manager", err.Error())
		os.Exit(1)
	}

	tokens, err := manager.Retrieve()
	if err != nil {
		ui.PrintWarning("No tokens stored")
		return
	}

	ui.PrintInfo("VK token", maskToken(tokens.VKToken))
	ui.PrintInfo("Disk token", maskToken(tokens.DiskToken))
	if !tokens.LastModified.IsZero() {
		ui.PrintInfo("Last modified", tokens.LastModified.Format("2006-01-02 15:04:05"))
	}
}

func runAuthDelete() {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token manager", err.Error())
		os.Exit(1)
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to delete tokens", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Tokens deleted")
}

// maskToken hides all but the last four characters of a token
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
