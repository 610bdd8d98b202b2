package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/bet-ledger-poc/internal/feed-service/ws"
	"github.com/radieske/bet-ledger-poc/internal/shared/cache"
	"github.com/radieske/bet-ledger-poc/internal/shared/config"
	"github.com/radieske/bet-ledger-poc/internal/shared/logger"
	"github.com/radieske/bet-ledger-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()

	// Inicializa logger estruturado
	log, err := logger.New("feed-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "feed-service"), zap.String("env", cfg.Env))

	// Redis para assinar o canal de snapshots de saldos
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hub WebSocket: clientes assinam "wallets" e/ou "investors"
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/ws", hub.HandleWS)
	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort, // ex: 8080
		Handler: apiMux,
	}

	// Servidor de métricas e health check
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(hctx context.Context) error {
		return redisClient.Ping(hctx).Err()
	})
	defer metricsSrv.Close()
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr)) // ex: 9095

	log.Info("ws feed listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
