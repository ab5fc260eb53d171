package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/models"
)

// feedChannel is the Redis Pub/Sub channel carrying dashboard feed events,
// so every backend instance fans the same events out to its sockets.
const feedChannel = "dashboard:feed"

// FeedEvent is the payload broadcast over Redis and WebSocket when
// something the dashboard shows live happens (new feedback, sent
// notification).
type FeedEvent struct {
	Type      string           `json:"type"` // feedback_submitted, notification_sent
	Feedback  *models.Feedback `json:"feedback,omitempty"`
	Title     string           `json:"title,omitempty"`
	Message   string           `json:"message,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// FeedHub is a registry of connected dashboard sockets on this instance.
type FeedHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan FeedEvent
}

var (
	feedHub     = &FeedHub{subs: make(map[int]chan FeedEvent)}
	feedStarted sync.Once
)

// SubscribeFeed registers a dashboard connection and returns its event
// channel plus an unsubscribe func. The channel is buffered; events are
// dropped rather than blocking the hub when a socket can't keep up.
func SubscribeFeed() (<-chan FeedEvent, func()) {
	feedHub.mu.Lock()
	defer feedHub.mu.Unlock()

	id := feedHub.nextID
	feedHub.nextID++
	ch := make(chan FeedEvent, 16)
	feedHub.subs[id] = ch

	unsubscribe := func() {
		feedHub.mu.Lock()
		defer feedHub.mu.Unlock()
		if c, ok := feedHub.subs[id]; ok {
			delete(feedHub.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

func fanOutFeedEvent(event FeedEvent) {
	feedHub.mu.Lock()
	defer feedHub.mu.Unlock()

	for _, ch := range feedHub.subs {
		select {
		case ch <- event:
		default:
			// Slow consumer; drop the event for this socket.
		}
	}
}

// StartFeedSubscriber ensures a single shared Redis listener per instance.
func StartFeedSubscriber(ctx context.Context) {
	feedStarted.Do(func() {
		go runFeedSubscriber(ctx)
	})
}

func runFeedSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			log.Printf("✅ Dashboard feed subscriber started (channel: %s)", feedChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal feed event: %v", err)
					continue
				}

				fanOutFeedEvent(event)
			}
		}()
	}
}

// PublishFeedEvent publishes an event to Redis for all instances to fan out.
func PublishFeedEvent(ctx context.Context, event FeedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, feedChannel, data).Err()
}
