package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	audit "github.com/radieske/bet-ledger-poc/internal/balance-audit"
	lrepo "github.com/radieske/bet-ledger-poc/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger-poc/internal/shared/config"
	"github.com/radieske/bet-ledger-poc/internal/shared/db"
	"github.com/radieske/bet-ledger-poc/internal/shared/kafka"
	"github.com/radieske/bet-ledger-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("balance-audit-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Conexão com banco para recalcular saldos a partir dos lançamentos
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer: consome mutações do ledger para auditar saldos
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  "balance-audit",
		Topic:    cfg.TopicLedgerEntries,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	// Kafka producer: publica divergências e, opcionalmente, envia para DLQ
	divergenceWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBalanceDivergence)
	defer divergenceWriter.Close()

	var dlqWriter *kafkago.Writer
	if cfg.TopicLedgerEntriesDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerEntriesDLQ)
		defer dlqWriter.Close()
	}

	// Servidor HTTP para métricas Prometheus e healthcheck
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	repo := lrepo.NewPostgres(pg, cfg.BankAccountName)
	auditor := audit.NewAuditor(log, repo, audit.NewKafkaDivergencePublisher(divergenceWriter))

	log.Info("balance-audit-worker started",
		zap.String("consume", cfg.TopicLedgerEntries),
		zap.String("publish", cfg.TopicBalanceDivergence),
	)

	ctx := context.Background()

	// Loop principal: consome mutações do Kafka e audita as contas tocadas
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		ev, err := audit.DecodeEntryMutated(msg.Value)
		if err != nil {
			log.Error("unmarshal entry mutated", zap.Error(err))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(msg.Key), msg.Value)
			}
			continue
		}

		if err := auditor.Process(ctx, ev); err != nil {
			log.Error("audit entry", zap.String("entryId", ev.EntryID), zap.Error(err))
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
		}
	}
}
