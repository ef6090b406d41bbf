package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fundraiser-store/internal/config"
	"fundraiser-store/internal/mailer"
	"fundraiser-store/internal/notify"
	"github.com/joho/godotenv"
)

// notifier consumes order-placed events and sends the confirmation email for
// each one. It is the receiving side of NOTIFY_MODE=kafka.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[notifier] ", log.LstdFlags|log.LUTC|log.Lshortfile)

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
	handler := notify.NewHandler(mailer.NewService(provider, cfg.MailFrom, logger), logger)

	consumer := notify.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, logger)
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Printf("close consumer: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("consuming %s as group %s", cfg.KafkaTopic, cfg.KafkaGroupID)
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("consumer stopped: %v", err)
		return
	}
	logger.Println("notifier stopped")
}
