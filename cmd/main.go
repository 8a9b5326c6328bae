package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergeyBogomolovv/esim-order-service/internal/airalo"
	"github.com/SergeyBogomolovv/esim-order-service/internal/app"
	"github.com/SergeyBogomolovv/esim-order-service/internal/config"
	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/events"
	"github.com/SergeyBogomolovv/esim-order-service/internal/handler"
	"github.com/SergeyBogomolovv/esim-order-service/internal/notify"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/internal/postgres"
	"github.com/SergeyBogomolovv/esim-order-service/internal/repo"
	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/cache"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/lock"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// @title           eSIM Order Service API
// @version         1.0
// @description     Заказы eSIM, колбэки оплаты и расход трафика
func main() {
	root := &cobra.Command{
		Use:          "esim-order-service",
		Short:        "eSIM orders, payment callbacks and provisioning",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Run HTTP API, Kafka consumer and sweeper", RunE: runServe},
		&cobra.Command{Use: "sweep", Short: "Expire abandoned pending orders once", RunE: runSweep},
		&cobra.Command{
			Use:       "migrate [up|down]",
			Short:     "Apply or roll back database migrations",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
			RunE:      runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, logger := loadConfig()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	logger.Info("postgres connected")

	rdb := redis.NewClient(&redis.Options{Addr: conf.Redis.Addr, Password: conf.Redis.Password, DB: conf.Redis.DB})
	panicIfErr("failed to connect to redis", rdb.Ping(cmd.Context()).Err())
	logger.Info("redis connected")

	deps := build(logger, conf, db, rdb)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, deps.orders)
	httpHandler := handler.NewHTTPHandler(logger, deps.orders)

	application := app.New(logger, conf)
	application.SetHTTPHandlers(httpHandler)
	application.SetConsumers(kafkaHandler)
	application.SetWorkers(
		deps.sweeper,
		app.WorkerFunc(func(ctx context.Context) {
			deps.cache.StartJanitor(ctx, conf.Cache.JanitorInterval)
		}),
	)
	application.SetClosers(db, rdb, deps.events)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", application.Start(ctx))
	<-ctx.Done()
	return application.Stop()
}

func runSweep(cmd *cobra.Command, _ []string) error {
	conf, logger := loadConfig()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: conf.Redis.Addr, Password: conf.Redis.Password, DB: conf.Redis.DB})
	defer rdb.Close()

	deps := build(logger, conf, db, rdb)
	defer deps.events.Close()

	n, err := deps.sweeper.SweepOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	logger.Info("sweep finished", slog.Int("expired", n))
	return nil
}

func runMigrate(_ *cobra.Command, args []string) error {
	conf, logger := loadConfig()

	dir := postgres.Direction(args[0])
	if err := postgres.Migrate(conf.Postgres, dir); err != nil {
		return err
	}
	logger.Info("migrations applied", slog.String("direction", string(dir)))
	return nil
}

type dependencies struct {
	orders  handler.OrderService
	sweeper *service.Sweeper
	cache   *cache.LRUCache
	events  *events.Publisher
}

func build(logger *slog.Logger, conf config.Config, db *sqlx.DB, rdb *redis.Client) dependencies {
	txManager := trm.NewManager(db)
	ledger := repo.NewLedgerRepo(db, txManager)
	settings := repo.NewSettingsRepo(db)
	lru := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	catalog := service.NewCatalogService(logger, repo.NewCatalogRepo(db), lru)

	httpClient := &http.Client{}
	tokens := airalo.NewTokenSource(logger, conf.Airalo.BaseURL, conf.Airalo.Timeout,
		entities.ProviderCredentials{ClientID: conf.Airalo.ClientID, ClientSecret: conf.Airalo.ClientSecret},
		settings, httpClient)
	provider := airalo.NewClient(logger, conf.Airalo.BaseURL, conf.Airalo.Timeout, tokens, httpClient)

	gateways := newGateways(logger, conf, settings, httpClient)
	publisher := events.NewPublisher(logger, conf.Kafka)
	notifier := notify.NewEmailNotifier(logger, conf.SMTP)

	orders := service.NewOrderService(logger, txManager, ledger, catalog, provider, gateways, publisher, notifier)
	sweeper := service.NewSweeper(logger, orders, lock.NewLocker(rdb, "esim-order-service:lock:"), service.SweeperConfig{
		Interval:   conf.Sweeper.Interval,
		PendingTTL: conf.Sweeper.PendingTTL,
		LockTTL:    conf.Sweeper.LockTTL,
	})

	return dependencies{orders: orders, sweeper: sweeper, cache: lru, events: publisher}
}

// newGateways ключи из окружения важнее настроек в админке
func newGateways(logger *slog.Logger, conf config.Config, store payment.ConnectorStore, httpClient *http.Client) *payment.Registry {
	registry := payment.NewRegistry(store)

	robokassa, err := payment.NewRobokassa(payment.RobokassaConfig{
		MerchantLogin: conf.Robokassa.MerchantLogin,
		Password1:     conf.Robokassa.Password1,
		Password2:     conf.Robokassa.Password2,
		TestMode:      conf.Robokassa.TestMode,
		Culture:       conf.Robokassa.Culture,
	})
	if err == nil {
		registry.Register(robokassa)
	} else {
		logger.Info("robokassa is not configured in env, using admin settings")
		registry.RegisterBuilder(payment.MethodRobokassa, payment.RobokassaFromConnector)
	}

	stripe, err := payment.NewStripe(payment.StripeConfig{
		SecretKey:     conf.Stripe.SecretKey,
		WebhookSecret: conf.Stripe.WebhookSecret,
		APIBaseURL:    conf.Stripe.APIBaseURL,
		PublicURL:     conf.Http.PublicURL,
		Timeout:       conf.Stripe.Timeout,
	}, httpClient)
	if err == nil {
		registry.Register(stripe)
	} else {
		logger.Info("stripe is not configured in env, using admin settings")
		registry.RegisterBuilder(payment.MethodStripe, payment.StripeBuilder(conf.Http.PublicURL, httpClient))
	}

	return registry
}

func loadConfig() (config.Config, *slog.Logger) {
	conf, err := config.New()
	panicIfErr("failed to parse config", err)
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())
	return conf, logger
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
