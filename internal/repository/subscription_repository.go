package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
)

type subscriptionRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewSubscription(pool *pgxpool.Pool) port.SubscriptionRepository {
	return &subscriptionRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewSubscriptionWithTx(tx pgx.Tx) port.SubscriptionRepository {
	return &subscriptionRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *subscriptionRepository) GetSubscription(ctx context.Context, subscriptionID uuid.UUID) (domain.Subscription, error) {
	sub, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Subscription, error) {
		var s domain.Subscription

		dbSub, err := q.GetSubscription(ctx, subscriptionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s, fmt.Errorf("q.GetSubscription: %w", ErrNotFound)
			}
			return s, fmt.Errorf("q.GetSubscription: %w", err)
		}

		billAddress, err := q.GetAddress(ctx, dbSub.BillAddressID)
		if err != nil {
			return s, fmt.Errorf("q.GetAddress[bill]: %w", err)
		}

		shipAddress, err := q.GetAddress(ctx, dbSub.ShipAddressID)
		if err != nil {
			return s, fmt.Errorf("q.GetAddress[ship]: %w", err)
		}

		dbLineItems, err := q.ListSubscriptionLineItems(ctx, subscriptionID)
		if err != nil {
			return s, fmt.Errorf("q.ListSubscriptionLineItems: %w", err)
		}

		s = mapDBSubscriptionToDomain(dbSub)
		s.BillAddress = mapDBAddressToDomain(billAddress)
		s.ShipAddress = mapDBAddressToDomain(shipAddress)
		s.LineItems = mapDBLineItemsToDomain(dbLineItems)

		return s, nil
	})
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("withTx: %w", err)
	}

	return sub, nil
}

// ListSyncable does not load addresses or line items.
func (r *subscriptionRepository) ListSyncable(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	dbSubs, err := r.q.ListSyncableSubscriptions(ctx, &now)
	if err != nil {
		return nil, fmt.Errorf("q.ListSyncableSubscriptions: %w", err)
	}

	subs := make([]domain.Subscription, 0, len(dbSubs))
	for _, dbSub := range dbSubs {
		subs = append(subs, mapDBSubscriptionToDomain(dbSub))
	}

	return subs, nil
}

func (r *subscriptionRepository) InsertSubscription(ctx context.Context, sub domain.Subscription) (uuid.UUID, error) {
	if sub.Persisted() {
		return uuid.Nil, errors.New("subscription is already persisted")
	}

	subID, err := withTx(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		billAddressID, err := q.InsertAddress(ctx, mapDomainAddressToInsertParams(sub.BillAddress))
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertAddress[bill]: %w", err)
		}

		shipAddressID, err := q.InsertAddress(ctx, mapDomainAddressToInsertParams(sub.ShipAddress))
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertAddress[ship]: %w", err)
		}

		subID, err := q.InsertSubscription(ctx, db.InsertSubscriptionParams{
			ShopID:              sub.ShopID,
			CustomerID:          sub.CustomerID,
			ScheduleID:          sub.ScheduleID,
			PaymentMethodID:     sub.PaymentMethodID,
			ShippingMethodID:    sub.ShippingMethodID,
			BillAddressID:       billAddressID,
			ShipAddressID:       shipAddressID,
			BeginsAt:            sub.BeginsAt,
			EndsAt:              sub.EndsAt,
			ShippingFeeEstimate: sub.ShippingFeeEstimate,
			PaymentFeeEstimate:  sub.PaymentFeeEstimate,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertSubscription: %w", err)
		}

		for _, item := range sub.LineItems {
			if _, err := q.InsertSubscriptionLineItem(ctx, mapDomainLineItemToInsertParams(subID, item)); err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertSubscriptionLineItem: %w", err)
			}
		}

		return subID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return subID, nil
}

// UpdateSubscription updates the subscription row and its addresses. Line items
// are written separately.
func (r *subscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	if !sub.Persisted() {
		return errors.New("subscription is not persisted")
	}

	if err := withTxExec(ctx, r.dbtx, func(q *db.Queries) error {
		current, err := q.GetSubscription(ctx, sub.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("q.GetSubscription: %w", ErrNotFound)
			}
			return fmt.Errorf("q.GetSubscription: %w", err)
		}

		if _, err := q.UpdateAddress(ctx, mapDomainAddressToUpdateParams(current.BillAddressID, sub.BillAddress)); err != nil {
			return fmt.Errorf("q.UpdateAddress[bill]: %w", err)
		}

		if _, err := q.UpdateAddress(ctx, mapDomainAddressToUpdateParams(current.ShipAddressID, sub.ShipAddress)); err != nil {
			return fmt.Errorf("q.UpdateAddress[ship]: %w", err)
		}

		rows, err := q.UpdateSubscription(ctx, db.UpdateSubscriptionParams{
			ID:                  sub.ID,
			CustomerID:          sub.CustomerID,
			ScheduleID:          sub.ScheduleID,
			PaymentMethodID:     sub.PaymentMethodID,
			ShippingMethodID:    sub.ShippingMethodID,
			BeginsAt:            sub.BeginsAt,
			EndsAt:              sub.EndsAt,
			ShippingFeeEstimate: sub.ShippingFeeEstimate,
			PaymentFeeEstimate:  sub.PaymentFeeEstimate,
		})
		if err != nil {
			return fmt.Errorf("q.UpdateSubscription: %w", err)
		}

		if err := expectOne(rows); err != nil {
			return fmt.Errorf("q.UpdateSubscription: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) InsertLineItem(ctx context.Context, subscriptionID uuid.UUID, item domain.SubscriptionLineItem) (uuid.UUID, error) {
	id, err := r.q.InsertSubscriptionLineItem(ctx, mapDomainLineItemToInsertParams(subscriptionID, item))
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertSubscriptionLineItem: %w", err)
	}

	return id, nil
}

func (r *subscriptionRepository) UpdateLineItem(ctx context.Context, item domain.SubscriptionLineItem) error {
	rows, err := r.q.UpdateSubscriptionLineItem(ctx, db.UpdateSubscriptionLineItemParams{
		ID:            item.ID,
		VariantID:     item.VariantID,
		Quantity:      int32(item.Quantity),
		PriceEstimate: item.PriceEstimate,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateSubscriptionLineItem: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.UpdateSubscriptionLineItem: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) DeleteLineItem(ctx context.Context, lineItemID uuid.UUID) error {
	rows, err := r.q.DeleteSubscriptionLineItem(ctx, lineItemID)
	if err != nil {
		return fmt.Errorf("q.DeleteSubscriptionLineItem: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.DeleteSubscriptionLineItem: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) SetPausedAt(ctx context.Context, subscriptionID uuid.UUID, pausedAt *time.Time) error {
	rows, err := r.q.SetSubscriptionPausedAt(ctx, db.SetSubscriptionPausedAtParams{
		ID:       subscriptionID,
		PausedAt: pausedAt,
	})
	if err != nil {
		return fmt.Errorf("q.SetSubscriptionPausedAt: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.SetSubscriptionPausedAt: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) SetCanceledAt(ctx context.Context, subscriptionID uuid.UUID, canceledAt time.Time) error {
	rows, err := r.q.SetSubscriptionCanceledAt(ctx, db.SetSubscriptionCanceledAtParams{
		ID:         subscriptionID,
		CanceledAt: &canceledAt,
	})
	if err != nil {
		return fmt.Errorf("q.SetSubscriptionCanceledAt: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.SetSubscriptionCanceledAt: %w", err)
	}

	return nil
}

func mapDBSubscriptionToDomain(s db.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:                  s.ID,
		ShopID:              s.ShopID,
		CustomerID:          s.CustomerID,
		ScheduleID:          s.ScheduleID,
		PaymentMethodID:     s.PaymentMethodID,
		ShippingMethodID:    s.ShippingMethodID,
		BillAddress:         domain.Address{ID: s.BillAddressID},
		ShipAddress:         domain.Address{ID: s.ShipAddressID},
		BeginsAt:            s.BeginsAt,
		EndsAt:              s.EndsAt,
		PausedAt:            s.PausedAt,
		CanceledAt:          s.CanceledAt,
		ShippingFeeEstimate: s.ShippingFeeEstimate,
		PaymentFeeEstimate:  s.PaymentFeeEstimate,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func mapDBLineItemsToDomain(rows []db.ListSubscriptionLineItemsRow) []domain.SubscriptionLineItem {
	items := make([]domain.SubscriptionLineItem, 0, len(rows))

	for _, row := range rows {
		items = append(items, domain.SubscriptionLineItem{
			ID:             row.ID,
			SubscriptionID: row.SubscriptionID,
			VariantID:      row.VariantID,
			Quantity:       int(row.Quantity),
			PriceEstimate:  row.PriceEstimate,
		})
	}

	return items
}

func mapDomainLineItemToInsertParams(subscriptionID uuid.UUID, item domain.SubscriptionLineItem) db.InsertSubscriptionLineItemParams {
	return db.InsertSubscriptionLineItemParams{
		SubscriptionID: subscriptionID,
		VariantID:      item.VariantID,
		Quantity:       int32(item.Quantity),
		PriceEstimate:  item.PriceEstimate,
	}
}
