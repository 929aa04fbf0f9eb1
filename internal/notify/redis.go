// Package notify queues shop summaries for delivery by a mailer.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SummaryJob is the payload pushed onto the queue.
type SummaryJob struct {
	Kind     domain.SummaryKind `json:"kind"`
	Summary  domain.ShopSummary `json:"summary"`
	Subject  string             `json:"subject"`
	Body     string             `json:"body"`
	Tries    int                `json:"tries"`
	QueuedAt time.Time          `json:"queued_at"`
}

type RedisNotifier struct {
	client  redis.Cmdable
	queue   string
	engine  *Engine
	nowFunc func() time.Time
}

func NewRedisNotifier(client redis.Cmdable, queue string) (*RedisNotifier, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if queue == "" {
		return nil, errors.New("queue is empty")
	}

	engine, err := NewEngine()
	if err != nil {
		return nil, fmt.Errorf("NewEngine: %w", err)
	}

	return &RedisNotifier{
		client:  client,
		queue:   queue,
		engine:  engine,
		nowFunc: time.Now,
	}, nil
}

func (n *RedisNotifier) Notify(ctx context.Context, kind domain.SummaryKind, summary domain.ShopSummary) error {
	subject, body, err := n.engine.Render(kind, summary)
	if err != nil {
		return fmt.Errorf("engine.Render: %w", err)
	}

	job := SummaryJob{
		Kind:     kind,
		Summary:  summary,
		Subject:  subject,
		Body:     body,
		QueuedAt: n.nowFunc().UTC(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := n.client.LPush(ctx, n.queue, string(data)).Err(); err != nil {
		return fmt.Errorf("client.LPush: %w", err)
	}

	return nil
}

func (n *RedisNotifier) QueueLength(ctx context.Context) (int64, error) {
	length, err := n.client.LLen(ctx, n.queue).Result()
	if err != nil {
		return 0, fmt.Errorf("client.LLen: %w", err)
	}

	return length, nil
}
