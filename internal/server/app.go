// Package server assembles and runs the portfolio backend: the JSON API,
// the gRPC health endpoint and the background pruning of expired OTPs.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/config"
	"github.com/dmitrijs2005/portfolio/internal/server/httpapi"
	"github.com/dmitrijs2005/portfolio/internal/server/notify"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/portfolio/internal/server/services"
	"github.com/dmitrijs2005/portfolio/internal/server/storage"

	gs "github.com/dmitrijs2005/portfolio/internal/server/grpc"
)

const (
	healthProbeInterval = 15 * time.Second
	pruneInterval       = time.Hour
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	api          *httpapi.API
	health       *gs.GRPCServer
	closeLimiter func() error
}

// NewApp connects to the database, applies migrations and wires every
// service. It fails fast when a backing service is unreachable.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.Environment, c.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var mailer notify.Mailer
	if c.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, c.MailFrom)
	} else {
		logger.Warn(ctx, "smtp is not configured, emails are written to the log")
		mailer = notify.NewLogMailer(logger)
	}
	notifier := notify.NewNotifier(mailer, logger, c.MailTimeout, c.OTPTTL)

	store, err := storage.NewS3Store(ctx, storage.S3Options{
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("object store: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenTTL)
	us := services.NewUserService(db, rm, c, issuer, notifier, logger)
	cs := services.NewContentService(db, rm)
	ups := services.NewUploadService(store, c.MaxUploadSize, c.PresignTTL)

	limitStore, closeLimiter, err := httpapi.NewLimiterStore(ctx, c.RedisAddr)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	metrics := httpapi.NewMetrics()
	api := httpapi.NewAPI(us, cs, ups, logger, metrics, httpapi.Options{
		Environment:  c.Environment,
		CORSOrigins:  c.CORSOrigins,
		AuthLimit:    httpapi.NewRateLimit("auth", limitStore, c.AuthRateLimit, c.RateLimitPeriod, logger, metrics),
		ContactLimit: httpapi.NewRateLimit("contact", limitStore, c.ContactRateLimit, c.RateLimitPeriod, logger, metrics),
	})

	health := gs.NewGRPCServer(c.GRPCHealthAddr, logger, db.PingContext, healthProbeInterval)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		userService:  us,
		api:          api,
		health:       health,
		closeLimiter: closeLimiter,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Info(ctx, "http server listening", "address", app.config.HTTPAddr, "environment", app.config.Environment)
	if err := serveHTTP(ctx, srv, srv.ListenAndServe, app.config.ShutdownTimeout); err != nil {
		app.logger.Error(ctx, "http server", "error", err)
		cancelFunc()
	}
}

// serveHTTP runs serve until ctx is cancelled and returns only after Shutdown
// has drained in-flight requests.
func serveHTTP(ctx context.Context, srv *http.Server, serve func() error, timeout time.Duration) error {
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		drained <- srv.Shutdown(shutdownCtx)
	}()

	if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-drained; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// pruneOTPs deletes expired codes once at start and then every pruneInterval.
func (app *App) pruneOTPs(ctx context.Context) {
	prune := func() {
		n, err := app.userService.PruneOTPs(ctx, app.config.OTPRetention)
		if err != nil {
			if ctx.Err() == nil {
				app.logger.Warn(ctx, "otp prune failed", "error", err)
			}
			return
		}
		if n > 0 {
			app.logger.Info(ctx, "expired otps pruned", "count", n)
		}
	}

	prune()
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives. The
// database and the rate limiter store are released only after the HTTP and
// gRPC servers have drained and the pruner has stopped.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.pruneOTPs(ctx)
	}()

	wg.Wait()

	if err := app.closeLimiter(); err != nil {
		app.logger.Warn(ctx, "close rate limiter store", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "close database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
