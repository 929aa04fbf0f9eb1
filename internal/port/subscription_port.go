package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
)

type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, subscriptionID uuid.UUID) (domain.Subscription, error)

	// ListSyncable returns subscriptions that are neither canceled nor ended at now.
	ListSyncable(ctx context.Context, now time.Time) ([]domain.Subscription, error)

	InsertSubscription(ctx context.Context, sub domain.Subscription) (uuid.UUID, error)
	UpdateSubscription(ctx context.Context, sub domain.Subscription) error

	InsertLineItem(ctx context.Context, subscriptionID uuid.UUID, item domain.SubscriptionLineItem) (uuid.UUID, error)
	UpdateLineItem(ctx context.Context, item domain.SubscriptionLineItem) error
	DeleteLineItem(ctx context.Context, lineItemID uuid.UUID) error

	SetPausedAt(ctx context.Context, subscriptionID uuid.UUID, pausedAt *time.Time) error
	SetCanceledAt(ctx context.Context, subscriptionID uuid.UUID, canceledAt time.Time) error
}
