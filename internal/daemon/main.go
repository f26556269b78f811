// Package daemon wires the process together: database, migrations, seed
// data, background maintenance and the web service.
package daemon

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/dsn"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web"
)

// cleanupInterval is how often expired sessions are purged.
const cleanupInterval = time.Hour

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	stop       chan struct{}
}

// Start runs the session cleanup loop and the web service. It blocks
// until the service has shut down.
func (d *Daemon) Start() error {
	go d.cleanupLoop()
	go func() {
		d.webService.WaitShutdown()
		close(d.stop)
	}()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// cleanupLoop purges expired sessions every hour. The purge is idempotent
// and safe to run concurrently with live logins.
func (d *Daemon) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := d.webService.Sessions().CleanupExpired()
			if err != nil {
				log.Error().Err(err).Msg("session cleanup failed")
				continue
			}

			if removed > 0 {
				log.Info().Int64("removed", removed).Msg("purged expired sessions")
			}
		case <-d.stop:
			return
		}
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
		stop:       make(chan struct{}),
	}
}

// OpenDB opens the configured database. The engine selects the GORM
// dialector; the DSN is built from the same configuration.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.DB.GormEngine == "postgres" {
		dialector = gormpostgres.Open(dsn.Create(cfg))
	} else {
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	return gorm.Open(dialector, &gorm.Config{})
}
