// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
)

var (
	cfg config.Config
	err error

	configPath string // Path to the configuration directory

	rootCmd = &cobra.Command{
		Use:   "go-shooter-portal",
		Short: "GoShooterPortal is the membership backend for shooting-sport clubs",
		Long: `GoShooterPortal is the membership backend for shooting-sport clubs
and federations. It serves authentication, role-based access control,
login session tracking and a tamper-evident audit trail over a REST API.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"etc/",
		"Path to the configuration directory",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
