package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recipedeck",
	Short: "RecipeDeck is a voice skill for browsing and cooking from a recipe collection",
	Long: `RecipeDeck answers voice assistant turns by listing recipe categories and
recipes from a Drive folder, rendering the chosen recipe on screen and
setting kitchen timers.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("dev", false, "Development logging (console encoder)")
}

// loadConfig reads the environment and applies persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if dev, _ := cmd.Flags().GetBool("dev"); dev {
		cfg.Logging.Development = true
	}
	return cfg, nil
}
