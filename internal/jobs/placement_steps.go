package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
)

// placement is the state carried through the placement pipeline for one proxy order.
type placement struct {
	proxyOrder   domain.ProxyOrder
	subscription domain.Subscription
	orderCycle   domain.OrderCycle
	order        domain.Order
	now          time.Time

	// dropped holds variants removed from the order as unavailable
	dropped []uuid.UUID
	outcome domain.SummaryIssueKind
	done    bool
}

func (p *placement) finish(outcome domain.SummaryIssueKind) {
	p.outcome = outcome
	p.done = true
}

type loadOrderCycle struct {
	orderCycles port.OrderCycleRepository
}

func newLoadOrderCycle(orderCycles port.OrderCycleRepository) (loadOrderCycle, error) {
	var s loadOrderCycle

	if orderCycles == nil {
		return s, errors.New("orderCycles is nil")
	}

	return loadOrderCycle{orderCycles: orderCycles}, nil
}

func (s loadOrderCycle) Name() string {
	return "load_order_cycle"
}

func (s loadOrderCycle) Run(ctx context.Context, p *placement) error {
	oc, err := s.orderCycles.GetOrderCycle(ctx, p.proxyOrder.OrderCycleID)
	if err != nil {
		return fmt.Errorf("orderCycles.GetOrderCycle: %w", err)
	}

	p.orderCycle = oc

	return nil
}

// initialiseOrder creates the cart order of a proxy order, or loads it when it exists.
type initialiseOrder struct {
	orders      port.OrderRepository
	proxyOrders port.ProxyOrderRepository
	variants    port.VariantRepository
	overrides   port.VariantOverrideRepository
}

func newInitialiseOrder(
	orders port.OrderRepository,
	proxyOrders port.ProxyOrderRepository,
	variants port.VariantRepository,
	overrides port.VariantOverrideRepository,
) (initialiseOrder, error) {
	var s initialiseOrder

	if orders == nil || proxyOrders == nil || variants == nil || overrides == nil {
		return s, errors.New("repositories must not be nil")
	}

	return initialiseOrder{
		orders:      orders,
		proxyOrders: proxyOrders,
		variants:    variants,
		overrides:   overrides,
	}, nil
}

func (s initialiseOrder) Name() string {
	return "initialise_order"
}

func (s initialiseOrder) Run(ctx context.Context, p *placement) error {
	if p.proxyOrder.OrderID != nil {
		order, err := s.orders.GetOrder(ctx, *p.proxyOrder.OrderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrder: %w", err)
		}

		p.order = order
		if order.Completed() {
			p.finish(domain.SummaryIssueComplete)
		}

		return nil
	}

	items, err := s.orderItems(ctx, p)
	if err != nil {
		return fmt.Errorf("orderItems: %w", err)
	}

	sub := p.subscription
	orderID, err := s.orders.InsertOrder(ctx, domain.Order{
		Number:           orderNumber(),
		ShopID:           sub.ShopID,
		CustomerID:       sub.CustomerID,
		OrderCycleID:     p.orderCycle.ID,
		ShippingMethodID: sub.ShippingMethodID,
		PaymentMethodID:  sub.PaymentMethodID,
		State:            domain.OrderStateCart,
		Items:            items,
		BillAddress:      sub.BillAddress,
		ShipAddress:      sub.ShipAddress,
	})
	if err != nil {
		return fmt.Errorf("orders.InsertOrder: %w", err)
	}

	if err := s.proxyOrders.SetOrder(ctx, p.proxyOrder.ID, orderID); err != nil {
		return fmt.Errorf("proxyOrders.SetOrder: %w", err)
	}
	p.proxyOrder.OrderID = &orderID

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("orders.GetOrder: %w", err)
	}
	p.order = order

	return nil
}

// orderItems prices subscription line items at the shop's override or the
// variant price. Items of unknown variants are dropped.
func (s initialiseOrder) orderItems(ctx context.Context, p *placement) ([]domain.OrderItem, error) {
	lineItems := p.subscription.LineItems

	variants, err := s.variants.GetVariants(ctx, lo.Map(lineItems, func(li domain.SubscriptionLineItem, _ int) uuid.UUID {
		return li.VariantID
	}))
	if err != nil {
		return nil, fmt.Errorf("variants.GetVariants: %w", err)
	}

	byID := lo.KeyBy(variants, func(v domain.Variant) uuid.UUID { return v.ID })

	items := make([]domain.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		variant, ok := byID[li.VariantID]
		if !ok {
			p.dropped = append(p.dropped, li.VariantID)
			continue
		}

		override, err := s.overrides.OverridePrice(ctx, p.subscription.ShopID, variant.ID)
		if err != nil {
			return nil, fmt.Errorf("overrides.OverridePrice: %w", err)
		}

		price := variant.Price
		if override.Valid {
			price.Amount = override.Decimal
		}

		items = append(items, domain.OrderItem{
			VariantID: variant.ID,
			Quantity:  li.Quantity,
			Price:     price,
		})
	}

	return items, nil
}

func orderNumber() string {
	return "S" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// reconcileAvailability drops order items the order cycle no longer distributes to the shop.
type reconcileAvailability struct {
	orders   port.OrderRepository
	variants port.VariantRepository
}

func newReconcileAvailability(orders port.OrderRepository, variants port.VariantRepository) (reconcileAvailability, error) {
	var s reconcileAvailability

	if orders == nil || variants == nil {
		return s, errors.New("repositories must not be nil")
	}

	return reconcileAvailability{orders: orders, variants: variants}, nil
}

func (s reconcileAvailability) Name() string {
	return "reconcile_availability"
}

func (s reconcileAvailability) Run(ctx context.Context, p *placement) error {
	variants, err := s.variants.GetVariants(ctx, lo.Map(p.order.Items, func(item domain.OrderItem, _ int) uuid.UUID {
		return item.VariantID
	}))
	if err != nil {
		return fmt.Errorf("variants.GetVariants: %w", err)
	}

	byID := lo.KeyBy(variants, func(v domain.Variant) uuid.UUID { return v.ID })

	kept := make([]domain.OrderItem, 0, len(p.order.Items))
	for _, item := range p.order.Items {
		variant, ok := byID[item.VariantID]
		if ok && !variant.Deleted() && p.orderCycle.DistributesVariant(p.order.ShopID, item.VariantID) {
			kept = append(kept, item)
			continue
		}

		if err := s.orders.DeleteOrderItem(ctx, p.order.ID, item.VariantID); err != nil {
			return fmt.Errorf("orders.DeleteOrderItem: %w", err)
		}
		p.dropped = append(p.dropped, item.VariantID)
	}
	p.order.Items = kept

	if len(kept) == 0 {
		p.finish(domain.SummaryIssueEmpty)
	}

	return nil
}

type completeOrder struct {
	orders port.OrderRepository
}

func newCompleteOrder(orders port.OrderRepository) (completeOrder, error) {
	var s completeOrder

	if orders == nil {
		return s, errors.New("orders is nil")
	}

	return completeOrder{orders: orders}, nil
}

func (s completeOrder) Name() string {
	return "complete_order"
}

func (s completeOrder) Run(ctx context.Context, p *placement) error {
	order, err := s.orders.AdvanceOrderState(ctx, p.order.ID, domain.OrderStateComplete, p.now)
	if err != nil {
		return fmt.Errorf("orders.AdvanceOrderState: %w", err)
	}

	p.order = order

	return nil
}

type markPlaced struct {
	proxyOrders port.ProxyOrderRepository
}

func newMarkPlaced(proxyOrders port.ProxyOrderRepository) (markPlaced, error) {
	var s markPlaced

	if proxyOrders == nil {
		return s, errors.New("proxyOrders is nil")
	}

	return markPlaced{proxyOrders: proxyOrders}, nil
}

func (s markPlaced) Name() string {
	return "mark_placed"
}

// Run marks the proxy order placed once it is linked to an order, including
// orders found complete and orders left empty.
func (s markPlaced) Run(ctx context.Context, p *placement) error {
	if p.proxyOrder.Placed() || p.proxyOrder.OrderID == nil {
		return nil
	}

	if err := s.proxyOrders.MarkPlaced(ctx, p.proxyOrder.ID, p.now); err != nil {
		return fmt.Errorf("proxyOrders.MarkPlaced: %w", err)
	}

	p.proxyOrder.PlacedAt = &p.now

	return nil
}

// buildPlacementSteps returns the main steps and the steps that run after an early finish.
func buildPlacementSteps(repos port.Repositories) ([]Step, []Step, error) {
	var results []Step

	step0, err := newLoadOrderCycle(repos.OrderCycles)
	if err != nil {
		return nil, nil, fmt.Errorf("newLoadOrderCycle: %w", err)
	}
	results = append(results, step0)

	step1, err := newInitialiseOrder(repos.Orders, repos.ProxyOrders, repos.Variants, repos.Overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("newInitialiseOrder: %w", err)
	}
	results = append(results, step1)

	step2, err := newReconcileAvailability(repos.Orders, repos.Variants)
	if err != nil {
		return nil, nil, fmt.Errorf("newReconcileAvailability: %w", err)
	}
	results = append(results, step2)

	step3, err := newCompleteOrder(repos.Orders)
	if err != nil {
		return nil, nil, fmt.Errorf("newCompleteOrder: %w", err)
	}
	results = append(results, step3)

	final0, err := newMarkPlaced(repos.ProxyOrders)
	if err != nil {
		return nil, nil, fmt.Errorf("newMarkPlaced: %w", err)
	}

	return results, []Step{final0}, nil
}
