package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
)

type IssueKind string

const (
	// IssueQuantityChanged means the order quantity no longer matches the subscription.
	IssueQuantityChanged       IssueKind = "quantity_changed"
	IssueItemMissing           IssueKind = "item_missing"
	IssueBillAddressChanged    IssueKind = "bill_address_changed"
	IssueShipAddressChanged    IssueKind = "ship_address_changed"
	IssueShippingMethodChanged IssueKind = "shipping_method_changed"
)

// OrderUpdateIssue is a change that cannot be carried over to an initialised
// order without overwriting edits made on the order itself.
type OrderUpdateIssue struct {
	ProxyOrderID uuid.UUID
	OrderID      uuid.UUID
	Kind         IssueKind
	VariantID    uuid.UUID
}

// OrderUpdateIssues reports, without changing anything, which initialised and
// incomplete orders of open order cycles diverge from the subscription in a
// way that params would overwrite.
func (f *Form) OrderUpdateIssues(ctx context.Context, subscriptionID uuid.UUID, params FormParams) ([]OrderUpdateIssue, error) {
	var issues []OrderUpdateIssue

	err := f.uow.Do(ctx, func(repos port.Repositories) error {
		current, err := repos.Subscriptions.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
		}

		updated, changes, err := assign(current, params)
		if err != nil {
			return err
		}

		proxyOrders, err := repos.ProxyOrders.ListBySubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("repos.ProxyOrders.ListBySubscription: %w", err)
		}

		now := f.nowFunc()
		for _, po := range proxyOrders {
			order, ok, err := updatableOrder(ctx, repos, po, now)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			issues = append(issues, orderIssues(po, order, current, updated, changes)...)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uow.Do: %w", err)
	}

	return issues, nil
}

// updatableOrder returns the initialised, incomplete order of po when its order cycle is open.
func updatableOrder(ctx context.Context, repos port.Repositories, po domain.ProxyOrder, now time.Time) (domain.Order, bool, error) {
	if po.OrderID == nil || po.Canceled() {
		return domain.Order{}, false, nil
	}

	oc, err := repos.OrderCycles.GetOrderCycle(ctx, po.OrderCycleID)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("repos.OrderCycles.GetOrderCycle: %w", err)
	}
	if !oc.Window.IsOpen(now) {
		return domain.Order{}, false, nil
	}

	order, err := repos.Orders.GetOrder(ctx, *po.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, false, nil
		}
		return domain.Order{}, false, fmt.Errorf("repos.Orders.GetOrder: %w", err)
	}

	if order.Completed() || order.State == domain.OrderStateCanceled {
		return domain.Order{}, false, nil
	}

	return order, true, nil
}

func orderIssues(po domain.ProxyOrder, order domain.Order, before, after domain.Subscription, changes domain.LineItemChanges) []OrderUpdateIssue {
	var issues []OrderUpdateIssue

	issue := func(kind IssueKind, variantID uuid.UUID) {
		issues = append(issues, OrderUpdateIssue{
			ProxyOrderID: po.ID,
			OrderID:      order.ID,
			Kind:         kind,
			VariantID:    variantID,
		})
	}

	previous := make(map[uuid.UUID]domain.SubscriptionLineItem, len(before.LineItems))
	for _, li := range before.LineItems {
		previous[li.ID] = li
	}

	for _, li := range changes.Update {
		old := previous[li.ID]
		if li.Quantity == old.Quantity && li.VariantID == old.VariantID {
			continue
		}

		item, ok := order.Item(old.VariantID)
		switch {
		case !ok:
			issue(IssueItemMissing, old.VariantID)
		case item.Quantity != old.Quantity:
			issue(IssueQuantityChanged, old.VariantID)
		}
	}

	// removing an item already gone from the order is a no-op
	for _, li := range changes.Delete {
		old := previous[li.ID]

		if item, ok := order.Item(old.VariantID); ok && item.Quantity != old.Quantity {
			issue(IssueQuantityChanged, old.VariantID)
		}
	}

	if !after.BillAddress.SameAs(before.BillAddress) && !order.BillAddress.SameAs(before.BillAddress) {
		issue(IssueBillAddressChanged, uuid.Nil)
	}

	if !after.ShipAddress.SameAs(before.ShipAddress) && !order.ShipAddress.SameAs(before.ShipAddress) {
		issue(IssueShipAddressChanged, uuid.Nil)
	}

	if after.ShippingMethodID != before.ShippingMethodID && order.ShippingMethodID != before.ShippingMethodID {
		issue(IssueShippingMethodChanged, uuid.Nil)
	}

	return issues
}
