package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Backplane operations.
const (
	OpRoom  = "room"
	OpUser  = "user"
	OpJoin  = "join"
	OpLeave = "leave"
)

// Frame is one instruction fanned out to every instance. OpRoom and OpUser
// carry Data for the sockets of Room or UserID; OpJoin and OpLeave move the
// sockets of UserID in or out of Room.
type Frame struct {
	Op     string          `json:"op"`
	Room   string          `json:"room,omitempty"`
	UserID uint            `json:"userId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// DeliverFunc applies a frame to the local sockets.
type DeliverFunc func(frame Frame)

// Backplane fans frames out to every gateway instance, including this one.
type Backplane interface {
	Publish(ctx context.Context, frame Frame) error
	// Start begins delivering published frames to deliver and returns once
	// the subscription is ready.
	Start(ctx context.Context, deliver DeliverFunc) error
	Close() error
}

// LocalBackplane delivers in-process. It is enough for a single instance.
type LocalBackplane struct {
	mu      sync.RWMutex
	deliver DeliverFunc
}

func NewLocalBackplane() *LocalBackplane {
	return &LocalBackplane{}
}

func (b *LocalBackplane) Publish(ctx context.Context, frame Frame) error {
	b.mu.RLock()
	deliver := b.deliver
	b.mu.RUnlock()
	if deliver != nil {
		deliver(frame)
	}
	return nil
}

func (b *LocalBackplane) Start(ctx context.Context, deliver DeliverFunc) error {
	b.mu.Lock()
	b.deliver = deliver
	b.mu.Unlock()
	return nil
}

func (b *LocalBackplane) Close() error { return nil }

const DefaultRedisChannel = "babytracker:ws"

// RedisBackplane relays frames over a Redis pub/sub channel so that every
// instance delivers to its own sockets.
type RedisBackplane struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
	pubsub  *redis.PubSub
}

func NewRedisBackplane(client *redis.Client, channel string, logger *slog.Logger) *RedisBackplane {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBackplane{client: client, channel: channel, logger: logger}
}

func (b *RedisBackplane) Publish(ctx context.Context, frame Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBackplane) Start(ctx context.Context, deliver DeliverFunc) error {
	b.pubsub = b.client.Subscribe(ctx, b.channel)
	if _, err := b.pubsub.Receive(ctx); err != nil {
		_ = b.pubsub.Close()
		return err
	}

	go func() {
		for msg := range b.pubsub.Channel() {
			var frame Frame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				b.logger.Warn("malformed backplane frame", "error", err)
				continue
			}
			deliver(frame)
		}
	}()
	return nil
}

func (b *RedisBackplane) Close() error {
	if b.pubsub == nil {
		return nil
	}
	return b.pubsub.Close()
}
