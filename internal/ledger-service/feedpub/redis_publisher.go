package feedpub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

// RedisPublisher publica snapshots completos de saldos num canal Pub/Sub.
// O feed-service assina esse canal e repassa pros clientes websocket.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) PublishBalances(ctx context.Context, wallets, investors map[string]engine.Cents) error {
	now := time.Now()
	if err := p.publish(ctx, snapshot("wallets", wallets, now)); err != nil {
		return err
	}
	return p.publish(ctx, snapshot("investors", investors, now))
}

func (p *RedisPublisher) publish(ctx context.Context, snap events.BalanceSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal balance snapshot: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish balance snapshot: %w", err)
	}
	return nil
}

func snapshot(collection string, balances map[string]engine.Cents, ts time.Time) events.BalanceSnapshot {
	snap := events.BalanceSnapshot{
		Collection: collection,
		Balances:   make(map[string]int64, len(balances)),
		BalancesEU: make(map[string]float64, len(balances)),
		Ts:         ts,
	}
	for id, c := range balances {
		snap.Balances[id] = int64(c)
		snap.BalancesEU[id] = c.EUR()
	}
	return snap
}
