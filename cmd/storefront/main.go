package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bagcheckout/internal/bag"
	"github.com/nikolayk812/bagcheckout/internal/checkout"
	"github.com/nikolayk812/bagcheckout/internal/config"
	"github.com/nikolayk812/bagcheckout/internal/httpapi"
	"github.com/nikolayk812/bagcheckout/internal/payment"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/nikolayk812/bagcheckout/internal/repository"
	"github.com/nikolayk812/bagcheckout/internal/session"
	"github.com/nikolayk812/bagcheckout/internal/template"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/storefront.toml", "path to config file")
	flag.Parse()

	if err := run(configPath); err != nil {
		slog.Error("Storefront exited with error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level[%s]: %w", cfg.LogLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	store, closeStore, err := newBagStore(ctx, cfg, pool)
	if err != nil {
		return fmt.Errorf("newBagStore: %w", err)
	}
	defer closeStore()

	handler, err := newHandler(cfg, pool, store)
	if err != nil {
		return fmt.Errorf("newHandler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, cfg.SessionTTL),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newBagStore keeps bags in Redis when it is configured and in Postgres otherwise.
func newBagStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (port.BagStore, func(), error) {
	if cfg.RedisAddr == "" {
		store, err := repository.NewBag(pool)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewBag: %w", err)
		}
		return store, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	closeClient := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Redis client close failed", "error", err)
		}
	}

	if err := client.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("client.Ping: %w", err)
	}

	store, err := session.NewRedisStore(client, cfg.SessionTTL)
	if err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("session.NewRedisStore: %w", err)
	}

	return store, closeClient, nil
}

func newHandler(cfg config.Config, pool *pgxpool.Pool, store port.BagStore) (*httpapi.Handler, error) {
	engine, err := template.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("template.NewEngine: %w", err)
	}

	catalog := repository.NewProduct(pool)

	orders, err := repository.NewOrder(pool, cfg.Delivery)
	if err != nil {
		return nil, fmt.Errorf("repository.NewOrder: %w", err)
	}

	transactor, err := repository.NewTransactor(pool, cfg.Delivery)
	if err != nil {
		return nil, fmt.Errorf("repository.NewTransactor: %w", err)
	}

	intents, err := payment.NewClient(payment.Config{
		BaseURL:   cfg.Payment.BaseURL,
		SecretKey: cfg.Payment.SecretKey,
		Timeout:   cfg.Payment.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("payment.NewClient: %w", err)
	}

	bags, err := bag.NewService(store, catalog, cfg.Delivery, engine)
	if err != nil {
		return nil, fmt.Errorf("bag.NewService: %w", err)
	}

	pipeline, err := checkout.NewPipeline(checkout.Deps{
		Store:      store,
		Catalog:    catalog,
		Intents:    intents,
		Transactor: transactor,
		Policy:     cfg.Delivery,
		Currency:   cfg.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout.NewPipeline: %w", err)
	}

	checkouts, err := checkout.NewService(pipeline, orders, engine)
	if err != nil {
		return nil, fmt.Errorf("checkout.NewService: %w", err)
	}

	handler, err := httpapi.NewHandler(bags, checkouts)
	if err != nil {
		return nil, fmt.Errorf("httpapi.NewHandler: %w", err)
	}

	return handler, nil
}
