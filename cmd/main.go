package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/YelzhanWeb/pancakes/internal/adapter/feed"
	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/adapter/postgres"
	"github.com/YelzhanWeb/pancakes/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/pancakes/internal/adapter/sqlite"
	"github.com/YelzhanWeb/pancakes/internal/adapter/telegram"
	"github.com/YelzhanWeb/pancakes/internal/app/admin"
	"github.com/YelzhanWeb/pancakes/internal/app/chat"
	"github.com/YelzhanWeb/pancakes/internal/app/eligibility"
	"github.com/YelzhanWeb/pancakes/internal/app/kitchen"
	"github.com/YelzhanWeb/pancakes/internal/app/order"
	"github.com/YelzhanWeb/pancakes/internal/config"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/pancakes/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/pancakes/internal/adapter/http"
)

func main() {
	// Parse command-line flags
	mode := pflag.String("mode", "api", "Service mode: api, notification-subscriber, migrate")
	configPath := pflag.String("config", "config.yaml", "Path to the YAML config file")
	port := pflag.Int("port", 0, "HTTP port (overrides config)")
	prefetch := pflag.Int("prefetch", 10, "RabbitMQ prefetch count")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Service.Port = *port
	}

	// Initialize logger
	lgr, err := logger.New(*mode, cfg.Log.Level, cfg.Log.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Route to appropriate service
	switch *mode {
	case "api":
		err = runAPI(ctx, cfg, lgr, *prefetch)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, lgr, *prefetch)
	case "migrate":
		err = runMigrate(cfg, lgr)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		lgr.Error("service_failed", "Service stopped with error", "runtime", map[string]interface{}{
			"mode": *mode,
		}, err)
		os.Exit(1)
	}
}

type stores struct {
	orders  interfaces.OrderRepository
	configs interfaces.ConfigRepository
	users   interfaces.UserRepository
	chat    interfaces.ChatRepository
	ping    func(ctx context.Context) error
	close   func()
}

// openStores migrates and connects the configured store driver.
func openStores(ctx context.Context, cfg *config.Config, lgr logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := sqlite.Open(cfg.Store.SQLitePath, lgr)
		if err != nil {
			return nil, err
		}
		lgr.Info("db_connected", "Opened SQLite database", "startup", map[string]interface{}{
			"path": cfg.Store.SQLitePath,
		})
		return &stores{
			orders:  sqlite.NewOrderRepository(db),
			configs: sqlite.NewConfigRepository(db),
			users:   sqlite.NewUserRepository(db),
			chat:    sqlite.NewChatRepository(db),
			ping:    db.PingContext,
			close:   func() { _ = db.Close() },
		}, nil
	}

	if err := postgres.Migrate(cfg.Database.URL(), lgr); err != nil {
		return nil, err
	}
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})
	return &stores{
		orders:  postgres.NewOrderRepository(db),
		configs: postgres.NewConfigRepository(db),
		users:   postgres.NewUserRepository(db),
		chat:    postgres.NewChatRepository(db),
		ping:    db.Ping,
		close:   db.Close,
	}, nil
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) error {
	st, err := openStores(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer st.close()

	loc, err := domain.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		return err
	}

	// Initialize messaging; without a broker changes stay in this process
	origin := uuid.NewString()
	var (
		publisher interfaces.MessagePublisher
		consumer  interfaces.MessageConsumer
	)
	if cfg.RabbitMQ.Enabled() {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer mqConn.Close()

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
		publisher = rabbitmq.NewPublisher(mqConn)
		consumer = rabbitmq.NewConsumer(mqConn, prefetch, lgr)
	}

	store := feed.NewStore(st.orders, publisher, lgr, origin)
	chatFeed := feed.NewChatFeed(st.chat, publisher, lgr, origin)

	// Initialize services
	clock := clockwork.NewRealClock()
	orderingService := order.NewService(store, st.configs, st.users, lgr, order.Options{
		Location: loc,
		Cooldown: cfg.Service.Cooldown(),
		Menu:     cfg.Service.Menu,
		Clock:    clock,
	})
	kitchenService := kitchen.NewService(store, lgr)
	adminService := admin.NewService(store, st.configs, lgr, loc, clock)
	chatService := chat.NewService(chatFeed, st.users, lgr)
	watcher := eligibility.NewWatcher(orderingService, clock, eligibility.DefaultInterval, lgr)

	if consumer != nil {
		changes := amqpAdapter.NewChangeHandler(store, chatFeed, origin, lgr)
		go func() {
			if err := consumer.ConsumeChanges(ctx, changes.HandleChange); err != nil && !errors.Is(err, context.Canceled) {
				lgr.Error("consumer_error", "Error consuming order changes", "runtime", nil, err)
			}
		}()
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Ordering: orderingService,
		Kitchen:  kitchenService,
		Admin:    adminService,
		Chat:     chatService,
		Users:    st.users,
		Watcher:  watcher,
		Health:   st.ping,
		Logger:   lgr,
	})

	// No WriteTimeout: board, chat and eligibility streams stay open
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.Service.Port), "startup", map[string]interface{}{
		"port":     cfg.Service.Port,
		"store":    cfg.Store.Driver,
		"rabbitmq": cfg.RabbitMQ.Enabled(),
		"origin":   origin,
		"timezone": loc.String(),
	})

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) error {
	if !cfg.RabbitMQ.Enabled() {
		return errors.New("notification-subscriber needs rabbitmq.host")
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer mqConn.Close()

	var notifier interfaces.Notifier
	if cfg.Telegram.Enabled() {
		bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			return err
		}
		notifier = bot
	} else {
		lgr.Warn("telegram_disabled", "Telegram is not configured, notifications are only logged", "startup", nil)
	}

	consumer := rabbitmq.NewConsumer(mqConn, prefetch, lgr)
	handler := amqpAdapter.NewNotificationHandler(notifier, lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"prefetch": prefetch,
		"telegram": notifier != nil,
	})

	err = consumer.ConsumeNotifications(ctx, handler.HandleNotification)

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
	return err
}

func runMigrate(cfg *config.Config, lgr logger.Logger) error {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := sqlite.Open(cfg.Store.SQLitePath, lgr)
		if err != nil {
			return err
		}
		return db.Close()
	}
	return postgres.Migrate(cfg.Database.URL(), lgr)
}
