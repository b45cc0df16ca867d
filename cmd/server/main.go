package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/staysocial/listing-service/internal/adapter/httpserver"
	natsadapter "github.com/staysocial/listing-service/internal/adapter/messaging/nats"
	"github.com/staysocial/listing-service/internal/adapter/repository/mongodb"
	"github.com/staysocial/listing-service/internal/config"
	"github.com/staysocial/listing-service/internal/listing/usecase"
	"github.com/staysocial/listing-service/internal/platform/logger"
	"github.com/staysocial/listing-service/internal/platform/tracer"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err.Error())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.Init(ctx, "listing-service", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("failed to initialize tracer", "error", err.Error())
			return
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tp.Shutdown(shutdownCtx)
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err.Error())
		return
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		log.Error("MongoDB is unreachable", "error", err.Error())
		return
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	repo := mongodb.NewListingRepository(db, log)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Error("failed to ensure indexes", "error", err.Error())
		return
	}

	var events usecase.EventPublisher
	if cfg.NATSURL != "" {
		publisher, err := natsadapter.NewPublisher(cfg.NATSURL)
		if err != nil {
			log.Error("failed to connect to NATS", "error", err.Error())
			return
		}
		defer publisher.Close()
		events = publisher
	}

	uc := usecase.NewListingUsecase(repo, events, log)
	handler := httpserver.NewHandler(uc, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpserver.NewRouter(handler, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
}
