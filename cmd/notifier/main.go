package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pitstop/config"
	"pitstop/infras/kafka"
	"pitstop/infras/otel"
	"pitstop/infras/postgres"
	providerRepository "pitstop/internal/domains/provider/repository"
	userRepository "pitstop/internal/domains/user/repository"
	"pitstop/internal/notifier"
	"pitstop/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ot := otel.New(cfg)
	db := postgres.New(cfg)
	client := kafka.New(cfg)

	worker := notifier.New(
		client,
		cfg,
		notifier.NewLogSender(),
		userRepository.New(db, ot),
		providerRepository.New(db, ot),
		ot,
	)

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Received shutdown signal, stopping notifier.")
		cancel()
	}()

	log.Info().Msg("Starting notifier worker.")

	worker.Run(ctx)
}
