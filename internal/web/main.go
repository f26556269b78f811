package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/audit"
	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
	auditloghandler "github.com/GoShooterPortal/GoShooterPortal/internal/web/handler/auditlog"
	authhandler "github.com/GoShooterPortal/GoShooterPortal/internal/web/handler/auth"
	sessionshandler "github.com/GoShooterPortal/GoShooterPortal/internal/web/handler/sessions"
	auditmw "github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/auditlog"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB

	authService *auth.Service
	verifier    *auth.Verifier
	resolver    *auth.Resolver
	sessions    *session.Manager
	recorder    *audit.Recorder
	query       *audit.Query
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown

	// flush queued audit entries before the process goes away
	s.recorder.Close()

	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New())
	}

	signer, err := token.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token signer")
	}

	authService := auth.NewService(db, signer)
	verifier := auth.NewVerifier(db, signer)
	resolver := auth.NewResolver(db)
	sessions := session.NewManager(db, cfg.Auth.SessionTTL.Duration)
	recorder := audit.NewRecorder(db, cfg.Audit.QueueSize)
	query := audit.NewQuery(db)

	// app-wide audit interceptor; records after handlers have run
	app.Use(auditmw.Middleware(recorder))

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
		verifier:    verifier,
		resolver:    resolver,
		sessions:    sessions,
		recorder:    recorder,
		query:       query,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes with guard checks)
	authhandler.Handler.Init(app, cfg, authService, verifier, resolver, sessions, recorder)
	sessionshandler.Handler.Init(app, cfg, verifier, sessions)
	auditloghandler.Handler.Init(app, cfg, verifier, resolver, sessions, query)

	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	return service
}

// Sessions exposes the session manager for maintenance tasks.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}
