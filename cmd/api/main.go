package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundraiser-store/internal/checkout"
	"fundraiser-store/internal/config"
	"fundraiser-store/internal/db"
	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/httpserver"
	"fundraiser-store/internal/mailer"
	"fundraiser-store/internal/notify"
	"fundraiser-store/internal/order"
	"fundraiser-store/internal/payment"
	cartrepo "fundraiser-store/internal/repository/cart"
	orderrepo "fundraiser-store/internal/repository/order"
	"fundraiser-store/internal/repository/pending"
	productrepo "fundraiser-store/internal/repository/product"
	cartsvc "fundraiser-store/internal/service/cart"
	productsvc "fundraiser-store/internal/service/product"
	"fundraiser-store/internal/seed"
	"fundraiser-store/internal/service/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	domain.UseNumericJSON()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	var dbpool *pgxpool.Pool
	if cfg.DBConnString == "" {
		logger.Printf("DB_DSN not set: using the built-in catalog and an in-memory pending-order log")
	} else {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
	}

	readyChecks := map[string]httpserver.ReadyCheck{}

	var cartStorage cartrepo.Storage
	switch cfg.CartBackend {
	case "memory":
		cartStorage = cartrepo.NewMemory()
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		cartStorage = cartrepo.NewRedis(rdb, cfg.CartTTL)
		readyChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	case "postgres":
		if dbpool == nil {
			logger.Fatalf("CART_BACKEND=postgres requires DB_DSN")
		}
		cartStorage = cartrepo.NewPostgres(dbpool)
	default:
		logger.Fatalf("unknown CART_BACKEND %q", cfg.CartBackend)
	}
	cartService := cartsvc.New(cartStorage, logger)

	var (
		products   productrepo.Repository
		pendingLog pending.Repository
	)
	if dbpool != nil {
		products = productrepo.NewPostgres(dbpool, logger)
		pendingLog = pending.NewPostgres(dbpool, logger)
	} else {
		products = productrepo.NewMemory(seed.Catalog()...)
		pendingLog = pending.NewMemory()
	}
	productService := productsvc.New(products)

	var orders orderrepo.Repository
	switch cfg.OrderStore {
	case "firestore":
		client, err := orderrepo.NewFirestoreClient(ctx, cfg.FirestoreProject, cfg.FirestoreCredFile)
		if err != nil {
			logger.Fatalf("init firestore: %v", err)
		}
		defer client.Close()
		orders = orderrepo.NewFirestore(client)
	case "mongo":
		mdb, err := orderrepo.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatalf("init mongo: %v", err)
		}
		defer mdb.Client().Disconnect(context.Background())
		orders = orderrepo.NewMongo(mdb)
		readyChecks["mongo"] = func(ctx context.Context) error { return mdb.Client().Ping(ctx, nil) }
	case "memory":
		logger.Printf("ORDER_STORE=memory: orders are lost on restart")
		orders = orderrepo.NewMemory()
	default:
		logger.Fatalf("unknown ORDER_STORE %q", cfg.OrderStore)
	}

	var gateway payment.Gateway
	if cfg.PayPalMode == "fake" {
		logger.Printf("PAYPAL_MODE=fake: payments are simulated")
		gateway = payment.NewFake()
	} else {
		pp, err := payment.NewPayPal(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalMode)
		if err != nil {
			logger.Fatalf("init paypal: %v", err)
		}
		gateway = pp
	}

	provider, err := mailer.NewProvider(cfg.MailProvider, mailer.ProviderOptions{
		SendGridAPIKey: cfg.SendGridAPIKey,
		SMTPHost:       cfg.SMTPHost,
		SMTPPort:       cfg.SMTPPort,
		SMTPUser:       cfg.SMTPUser,
		SMTPPassword:   cfg.SMTPPassword,
	})
	if err != nil {
		logger.Fatalf("init mailer: %v", err)
	}
	mailService := mailer.NewService(provider, cfg.MailFrom, logger)

	var notifier order.Notifier
	switch cfg.NotifyMode {
	case "http":
		notifier = notify.NewHTTP(cfg.ConfirmationURL, &http.Client{Timeout: 15 * time.Second})
	case "kafka":
		k := notify.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer closeQuietly(logger, "kafka writer", k)
		notifier = k
	case "none":
		notifier = notify.Nop{}
	default:
		logger.Fatalf("unknown NOTIFY_MODE %q", cfg.NotifyMode)
	}

	submitter := order.NewSubmitter(gateway, orders, pendingLog, notifier, cartService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:     session.New(cfg.SessionSecret, cfg.CartTTL),
		Products:     productService,
		Carts:        cartService,
		Bridges:      checkout.NewRegistry(cfg.CheckoutTTL),
		Payments:     gateway,
		Submitter:    submitter,
		Mailer:       mailService,
		Pending:      pendingLog,
		Orders:       orders,
		AdminToken:   cfg.AdminToken,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.SecureCookie,
		ReadyChecks:  readyChecks,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func closeQuietly(logger *log.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Printf("close %s: %v", name, err)
	}
}
