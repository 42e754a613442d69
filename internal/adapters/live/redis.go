package live

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

// RedisBroadcaster publishes vote events on a pub/sub channel so that every
// instance subscribed with StartRedisSubscriber relays them to its clients.
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) PublishVoteCast(ctx context.Context, event domain.VoteCastEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode vote event: %w", err)
	}
	return b.r.Publish(ctx, b.channel, payload).Err()
}

// StartRedisSubscriber relays channel messages to hub until ctx is done. It
// returns once the subscription is confirmed.
func StartRedisSubscriber(ctx context.Context, log *zap.Logger, r *redis.Client, channel string, hub *Hub) error {
	sub := r.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					log.Warn("redis subscription closed", zap.String("channel", channel))
					return
				}
				hub.Broadcast([]byte(msg.Payload))
			}
		}
	}()
	return nil
}

func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
