package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/amqp"
	"github.com/FabricioUDB/control-gastos/internal/core/events"
	"github.com/FabricioUDB/control-gastos/internal/session"
	sessionStore "github.com/FabricioUDB/control-gastos/internal/session/postgres"
	"github.com/FabricioUDB/control-gastos/internal/transport/rest"
	"github.com/FabricioUDB/control-gastos/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that fronts the expense ledger`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Router    *chi.Mux
	Publisher *amqp.Publisher
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		deps.Logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.Publisher.Close(); err != nil {
			deps.Logger.Error("Publisher close error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		deps.Logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.App.Env)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	bus := events.NewBus(log)
	remote := sessionStore.NewLedgerRepository(gdb)
	sessions := session.NewManager(remote, bus, log, config.App.Location())
	sessionHandler := session.NewHandler(sessions)

	var publisher *amqp.Publisher
	if config.Broker.URL != "" {
		publisher, err = amqp.NewPublisher(config.Broker.URL, config.Broker.Exchange, config.Broker.Queue)
		if err != nil {
			return nil, fmt.Errorf("failed to connect broker: %w", err)
		}
		for _, eventType := range []string{
			events.TypeExpenseCreated,
			events.TypeExpenseUpdated,
			events.TypeExpenseDeleted,
		} {
			bus.Subscribe(eventType, publisher.Handler())
		}
		log.Info("broker mirror enabled", "exchange", config.Broker.Exchange)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, sessionHandler, log)

	return &Dependencies{
		Config:    config,
		Logger:    log,
		DB:        db,
		Router:    router,
		Publisher: publisher,
	}, nil
}

// initDB opens the connection pool backing the ledger store.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
