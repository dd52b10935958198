package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vendora/internal/config"
	"vendora/internal/db"
	"vendora/internal/httpserver"
	"vendora/internal/metrics"
	"vendora/internal/redis"
	loyaltyrepo "vendora/internal/repository/loyalty"
	productrepo "vendora/internal/repository/product"
	storerepo "vendora/internal/repository/store"
	cartsvc "vendora/internal/service/cart"
	curationsvc "vendora/internal/service/curation"
	gatesvc "vendora/internal/service/gate"
	viewsvc "vendora/internal/service/view"
	"vendora/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	m := metrics.New()
	sessions := session.NewRedis(rdb, cfg.SessionTTL)

	storeRepo := storerepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	loyaltyRepo := loyaltyrepo.NewPostgres(dbpool, logger)

	gateService := gatesvc.New(storeRepo, productRepo)
	curationService := curationsvc.New(productRepo, m, cfg.MarketplacePerStoreCap, cfg.MarketplaceTotalCap, cfg.LandingSampleCap)
	cartService := cartsvc.New(sessions, productRepo, storeRepo, loyaltyRepo, logger)
	viewCounter := viewsvc.NewCounter(sessions, storeRepo, m, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, httpserver.Deps{
		GateSvc:     gateService,
		CurationSvc: curationService,
		CartSvc:     cartService,
		ViewCounter: viewCounter,
		SessionTTL:  cfg.SessionTTL,
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
