// Command blogapp runs the blog notification service: the admin HTTP
// API, the fan-out delivery consumer, and the account reactivation
// scheduler, all in one process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"blogapp/internal/config"
	"blogapp/internal/delivery"
	"blogapp/internal/fanout"
	"blogapp/internal/handler"
	"blogapp/internal/httpserver"
	"blogapp/internal/logger"
	"blogapp/internal/mailer"
	"blogapp/internal/notify"
	"blogapp/internal/queue"
	"blogapp/internal/repository"
	"blogapp/internal/scheduler"
	"blogapp/internal/storage"
)

type appConfig struct {
	// BaseURL is the public address used to build deep links in emails.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	// AdminToken guards the admin API. Empty disables the check.
	AdminToken string `env:"ADMIN_TOKEN"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg    appConfig
		logCfg    logger.Config
		dbCfg     storage.Config
		queueCfg  queue.Config
		mailCfg   mailer.Config
		httpCfg   httpserver.Config
		schedCfg  scheduler.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&dbCfg)
	config.MustLoad(&queueCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&schedCfg)

	log := logger.NewFromConfig(logCfg, logger.WithService("blogapp"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(dbCfg)
	if err != nil {
		return err
	}
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	broker, err := queue.Dial(queueCfg, log)
	if err != nil {
		return err
	}
	defer broker.Close()

	var sender mailer.Sender
	if mailCfg.HasCredentials() {
		sender, err = mailer.NewSMTPSender(mailCfg)
		if err != nil {
			return err
		}
		log.Info("using SMTP sender", logger.Component("main"))
	} else {
		sender, err = mailer.NewDevSender(mailCfg.DevOutputDir)
		if err != nil {
			return err
		}
		log.Warn("SMTP credentials missing, writing emails to disk",
			logger.Component("main"))
	}

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)
	attempts := repository.NewDeliveryAttemptRepository(db)

	producer := fanout.NewProducer(follows, broker, log)
	notifier := notify.New(users, posts, sender, appCfg.BaseURL, log)
	consumer := delivery.NewConsumer(posts, users, attempts, sender, appCfg.BaseURL, log)
	reactivator := scheduler.New(users, schedCfg, log)

	admin := handler.NewAdminHandler(posts, users, attempts, producer, notifier, log)
	router := handler.NewRouter(admin, appCfg.AdminToken, map[string]handler.HealthCheck{
		"broker": func(context.Context) error { return broker.Ping() },
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}, log)

	srv := httpserver.New(httpCfg, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx, router) })
	g.Go(func() error { return consumer.Run(ctx, broker) })
	g.Go(func() error { return reactivator.Run(ctx) })

	log.Info("blogapp started", logger.Component("main"))
	err = g.Wait()
	log.Info("blogapp stopped", logger.Component("main"))
	return err
}
