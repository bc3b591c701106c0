package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"shopd/internal/cache"
	"shopd/internal/config"
	"shopd/internal/db"
	"shopd/internal/httpserver"
	cartrepo "shopd/internal/repository/cart"
	itemrepo "shopd/internal/repository/item"
	orderrepo "shopd/internal/repository/order"
	userrepo "shopd/internal/repository/user"
	cartsvc "shopd/internal/service/cart"
	itemsvc "shopd/internal/service/item"
	ordersvc "shopd/internal/service/order"
	usersvc "shopd/internal/service/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Printf("redis unreachable, catalog cache disabled: %v", err)
			rdb = nil
		}
	}

	userRepo := userrepo.NewPostgres(dbpool, logger)
	itemRepo := cache.NewCachingItemRepository(rdb, cfg.ItemCacheTTL, itemrepo.NewPostgres(dbpool, logger))
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	userService := usersvc.New(userRepo, cartRepo, nil)
	itemService := itemsvc.New(itemRepo)
	cartService := cartsvc.New(cartRepo, itemRepo)
	orderService := ordersvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:  userService,
		ItemSvc:  itemService,
		CartSvc:  cartService,
		OrderSvc: orderService,
	}, httpserver.Options{
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
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
