package main

import (
	"os"
	"os/signal"
	"syscall"

	"GminaGolang/internal/config"
	"GminaGolang/pkg/analytics"
	"GminaGolang/pkg/log"
	"GminaGolang/pkg/session"
	"GminaGolang/pkg/smtp"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	smtpMailer := smtp.New()

	sessionStore := session.NewMemory()
	if os.Getenv("REDIS_ADDRESS") != "" {
		sessionStore = session.New()
	}

	sink := analytics.NewDisabled()
	if os.Getenv("GA4_MEASUREMENT_ID") != "" {
		sink = analytics.New(logger)
	}

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithSessionStore(sessionStore),
		config.WithSMTPMailer(smtpMailer),
		config.WithMiddleware(),
		config.WithAnalyticsSink(sink),
		config.WithSearchEngine(),
		config.WithUtils(),
	}

	if os.Getenv("DB_HOST") != "" {
		options = append(options, config.WithDatabase())
	}
	if os.Getenv("AWS_BUCKET_NAME") != "" {
		options = append(options, config.WithS3Client())
	}

	server, err := config.NewServer(options...)
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
}
