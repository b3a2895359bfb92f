package main

import (
	"FinTrack/internal/config"
	"FinTrack/pkg/log"
	"FinTrack/pkg/redis"
	validatorPkg "FinTrack/pkg/validator"
	websocketPkg "FinTrack/pkg/websocket"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Deployments pass configuration through the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.NewLogger().Warnf("Error loading .env file: %v", err)
	}

	logger := log.NewLogger()

	fiberApp := config.NewFiber(logger)
	validator := validatorPkg.New()
	redisServer := redis.New()
	hub := websocketPkg.NewHub(logger)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithHub(hub),
		config.WithMiddleware(),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
