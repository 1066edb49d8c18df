package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channels other services can subscribe to.
const (
	ChannelInterviewEnded           = "interview_ended"
	ChannelApplicationSubmitted     = "application_submitted"
	ChannelApplicationStatusChanged = "application_status_changed"
)

type InterviewEndedEvent struct {
	InterviewID string    `json:"interviewId"`
	OwnerID     string    `json:"ownerId"`
	JobRole     string    `json:"jobRole"`
	Turns       int       `json:"turns"`
	Score       float64   `json:"score"`
	EndedAt     time.Time `json:"endedAt"`
}

type ApplicationEvent struct {
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	CandidateID   string    `json:"candidateId"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}

// Publisher broadcasts domain events. Publishing is best-effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, channel string, event interface{}) error
}

type RedisPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisPublisher(rdb *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, logger: logger}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", channel, err)
	}
	receivers, err := p.rdb.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish %s event: %w", channel, err)
	}
	p.logger.Debug("event published", zap.String("channel", channel), zap.Int64("receivers", receivers))
	return nil
}

// NopPublisher drops every event. Used when no redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// PublishAsync publishes on a detached context so a cancelled request doesn't drop the event.
func PublishAsync(p Publisher, logger *zap.Logger, channel string, event interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, channel, event); err != nil {
			logger.Warn("failed to publish event", zap.String("channel", channel), zap.Error(err))
		}
	}()
}
