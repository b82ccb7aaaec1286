package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnalysisStream is the stream analysis-completed events are appended to.
const AnalysisStream = "augur.analyses"

// RedisPublisher publishes analysis events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisPublisherFromClient wraps an existing Redis client.
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// Client returns the underlying Redis client.
func (rp *RedisPublisher) Client() *redis.Client {
	return rp.client
}

// PublishAnalysis appends a completed analysis to the stream
func (rp *RedisPublisher) PublishAnalysis(ctx context.Context, analysis interface{}) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: AnalysisStream,
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
