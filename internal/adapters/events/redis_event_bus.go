package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	redisclient "github.com/zatekoja/hospitallocator/internal/infrastructure/clients/redis"
)

const subscriberBuffer = 100

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// One Redis subscription per channel is shared by all local subscribers.
type RedisEventBus struct {
	client        *redisclient.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan *entities.HospitalEvent]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.HospitalEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

var _ providers.EventBus = (*RedisEventBus)(nil)

// Publish publishes an event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.HospitalEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Msg("published event")
	return nil
}

// Subscribe subscribes to events on a channel until ctx is done
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.HospitalEvent, error) {
	b.mu.Lock()
	if _, exists := b.subscriptions[channel]; !exists {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		if _, err := pubsub.Receive(b.ctx); err != nil {
			_ = pubsub.Close()
			b.mu.Unlock()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		b.subscriptions[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}
	eventChan := b.addSubscriberLocked(channel)
	subscriberCount := len(b.subscribers[channel])
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", subscriberCount).Msg("subscribed to channel")

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

func (b *RedisEventBus) addSubscriberLocked(channel string) chan *entities.HospitalEvent {
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.HospitalEvent]struct{})
	}
	eventChan := make(chan *entities.HospitalEvent, subscriberBuffer)
	b.subscribers[channel][eventChan] = struct{}{}
	return eventChan
}

func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	defer func() {
		if err := b.cleanupChannel(channel); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to clean up channel")
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event entities.HospitalEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("failed to decode event")
				continue
			}
			b.broadcast(channel, &event)
		}
	}
}

// broadcast never blocks; a full subscriber misses the event
func (b *RedisEventBus) broadcast(channel string, event *entities.HospitalEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
			log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, dropping event")
		}
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, eventChan chan *entities.HospitalEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}

	delete(subscribers, eventChan)
	close(eventChan)

	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
		if pubsub, ok := b.subscriptions[channel]; ok {
			_ = pubsub.Close()
			delete(b.subscriptions, channel)
		}
	}
}

func (b *RedisEventBus) cleanupChannel(channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)

	if pubsub, ok := b.subscriptions[channel]; ok {
		delete(b.subscriptions, channel)
		if err := pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close subscription %s: %w", channel, err)
		}
	}
	return nil
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.RLock()
	channels := make([]string, 0, len(b.subscriptions))
	for channel := range b.subscriptions {
		channels = append(channels, channel)
	}
	b.mu.RUnlock()

	var errs []error
	for _, channel := range channels {
		if err := b.cleanupChannel(channel); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing event bus: %v", errs)
	}

	log.Info().Msg("event bus closed")
	return nil
}
