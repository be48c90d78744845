package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-approvals-api/internal/config"
	"github.com/go-approvals-api/internal/infrastructure/dynamo"
	"github.com/go-approvals-api/internal/infrastructure/memstore"
	"github.com/go-approvals-api/internal/infrastructure/sns"
	"github.com/go-approvals-api/internal/infrastructure/telegram"
	transporthttp "github.com/go-approvals-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Operator channel (optional — graceful fallback).
	var channel telegram.Channel
	if ch, err := telegram.NewChannel(cfg); err == nil {
		channel = ch
	} else {
		log.Printf("WARN: telegram channel not available: %v", err)
	}

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	store := memstore.NewVerificationStore(cfg.VerificationTTL)

	// Background eviction loop, stopped on shutdown.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go memstore.NewSweeper(store, cfg.SweepInterval).Run(sweepCtx)

	deps := &transporthttp.Deps{
		Store:          store,
		PaymentMethods: dynamo.NewPaymentMethodRepo(dynamoClient, cfg.DynamoTables.PaymentMethods),
		Channel:        channel,
		SMSSender:      smsSender,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweeper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
