package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	lhttp "github.com/radieske/bet-ledger-poc/internal/ledger-service/http"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/feedpub"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/producer"
	lrepo "github.com/radieske/bet-ledger-poc/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger-poc/internal/shared/cache"
	"github.com/radieske/bet-ledger-poc/internal/shared/config"
	"github.com/radieske/bet-ledger-poc/internal/shared/db"
	"github.com/radieske/bet-ledger-poc/internal/shared/kafka"
	"github.com/radieske/bet-ledger-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()

	// Inicializa logger estruturado
	log, err := logger.New("ledger-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "ledger-service"), zap.String("env", cfg.Env))

	// Conexão com Postgres para lançamentos e saldos
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis para publicar snapshots de saldos no feed
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Kafka para publicar mutações confirmadas
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerEntries)
	defer writer.Close()

	repo := lrepo.NewPostgres(pg, cfg.BankAccountName)

	// Contas padrão são criadas apenas se ainda não existirem
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := repo.SeedDefaults(seedCtx); err != nil {
		log.Fatal("seed accounts", zap.Error(err))
	}
	seedCancel()

	publ := producer.NewKafkaPublisher(writer)
	feed := feedpub.NewRedisPublisher(redisClient, cfg.RedisPubSubChannel)
	api := lhttp.NewServer(log, repo, publ, feed, cfg.BankAccountName)

	// Servidor HTTP público (API do ledger)
	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort, // ex: 8082
		Handler: api.Router(),
	}

	// Servidor de métricas e health check
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := pg.PingContext(ctx); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux} // ex: 9098

	// Inicia servidor de métricas/health em goroutine separada
	go func() {
		log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics srv", zap.Error(err))
		}
	}()

	// Inicia servidor principal da API do ledger
	log.Info("api listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
