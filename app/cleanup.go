package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/daemon"
	"github.com/GoShooterPortal/GoShooterPortal/internal/logger"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(cleanupCmd)
}

// cleanupCmd purges expired sessions once and exits. The running daemon
// does the same on an hourly ticker; this command exists for cron-style
// setups and one-off maintenance.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup-sessions",
	Short: "Delete expired login sessions and exit",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := daemon.OpenDB(&cfg)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}

		removed, err := session.NewManager(db, cfg.Auth.SessionTTL.Duration).CleanupExpired()
		if err != nil {
			return err
		}

		fmt.Printf("removed %d expired sessions\n", removed)

		return nil
	},
}
