package jobs

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"golang.org/x/text/currency"
)

var errBoom = errors.New("boom")

// store implements the repository methods the jobs use. Embedded interfaces
// are left nil, so calling anything else panics.
type store struct {
	port.SubscriptionRepository
	port.ProxyOrderRepository
	port.OrderCycleRepository
	port.OrderRepository
	port.VariantRepository
	port.VariantOverrideRepository

	mu          sync.Mutex
	subs        map[uuid.UUID]domain.Subscription
	proxyOrders map[uuid.UUID]domain.ProxyOrder
	cycles      map[uuid.UUID]domain.OrderCycle
	schedules   map[uuid.UUID][]uuid.UUID
	orders      map[uuid.UUID]domain.Order
	variants    map[uuid.UUID]domain.Variant
	overrides   map[uuid.UUID]decimal.Decimal

	// advanceErr fails AdvanceOrderState
	advanceErr error
	seq        int
}

func newStore() *store {
	return &store{
		subs:        make(map[uuid.UUID]domain.Subscription),
		proxyOrders: make(map[uuid.UUID]domain.ProxyOrder),
		cycles:      make(map[uuid.UUID]domain.OrderCycle),
		schedules:   make(map[uuid.UUID][]uuid.UUID),
		orders:      make(map[uuid.UUID]domain.Order),
		variants:    make(map[uuid.UUID]domain.Variant),
		overrides:   make(map[uuid.UUID]decimal.Decimal),
	}
}

func (s *store) repos() port.Repositories {
	return port.Repositories{
		Subscriptions: s,
		ProxyOrders:   s,
		OrderCycles:   s,
		Orders:        s,
		Variants:      s,
		Overrides:     s,
	}
}

func (s *store) stamp() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

func (s *store) GetSubscription(_ context.Context, subscriptionID uuid.UUID) (domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[subscriptionID]
	if !ok {
		return domain.Subscription{}, domain.ErrNotFound
	}

	return sub, nil
}

func (s *store) ListSyncable(_ context.Context, now time.Time) ([]domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Subscription
	for _, sub := range s.subs {
		if sub.Canceled() || (sub.EndsAt != nil && sub.EndsAt.Before(now)) {
			continue
		}
		result = append(result, sub)
	}

	slices.SortFunc(result, func(a, b domain.Subscription) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return result, nil
}

func (s *store) filterProxyOrders(keep func(po domain.ProxyOrder) bool) []domain.ProxyOrder {
	var result []domain.ProxyOrder
	for _, po := range s.proxyOrders {
		if keep(po) {
			result = append(result, po)
		}
	}

	slices.SortFunc(result, func(a, b domain.ProxyOrder) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return result
}

func (s *store) GetProxyOrder(_ context.Context, proxyOrderID uuid.UUID) (domain.ProxyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok {
		return domain.ProxyOrder{}, domain.ErrNotFound
	}

	return po, nil
}

func (s *store) ListBySubscription(_ context.Context, subscriptionID uuid.UUID) ([]domain.ProxyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterProxyOrders(func(po domain.ProxyOrder) bool { return po.SubscriptionID == subscriptionID }), nil
}

func (s *store) ListPlaceable(_ context.Context, now time.Time) ([]domain.ProxyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterProxyOrders(func(po domain.ProxyOrder) bool {
		sub := s.subs[po.SubscriptionID]
		return !po.Placed() && !po.Canceled() &&
			s.cycles[po.OrderCycleID].Window.IsOpen(now) &&
			!sub.Paused() && !sub.Canceled()
	}), nil
}

func (s *store) ListConfirmable(_ context.Context, closed domain.TimeRange) ([]domain.ProxyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterProxyOrders(func(po domain.ProxyOrder) bool {
		return po.Placed() && po.ConfirmedAt == nil &&
			s.cycles[po.OrderCycleID].Window.ClosesWithin(closed.From, closed.To)
	}), nil
}

func (s *store) InsertProxyOrder(_ context.Context, subscriptionID, orderCycleID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, po := range s.proxyOrders {
		if po.SubscriptionID == subscriptionID && po.OrderCycleID == orderCycleID {
			return false, nil
		}
	}

	at := s.stamp()
	po := domain.ProxyOrder{ID: uuid.New(), SubscriptionID: subscriptionID, OrderCycleID: orderCycleID, CreatedAt: at, UpdatedAt: at}
	s.proxyOrders[po.ID] = po

	return true, nil
}

func (s *store) DeleteUnplaced(_ context.Context, proxyOrderID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok || po.Placed() || po.OrderID != nil {
		return false, nil
	}

	delete(s.proxyOrders, proxyOrderID)

	return true, nil
}

func (s *store) updateProxyOrder(proxyOrderID uuid.UUID, fn func(po *domain.ProxyOrder)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok {
		return domain.ErrNotFound
	}

	fn(&po)
	s.proxyOrders[proxyOrderID] = po

	return nil
}

func (s *store) SetOrder(_ context.Context, proxyOrderID, orderID uuid.UUID) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) { po.OrderID = &orderID })
}

func (s *store) MarkPlaced(_ context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) { po.PlacedAt = &at })
}

func (s *store) MarkConfirmed(_ context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) { po.ConfirmedAt = &at })
}

func (s *store) GetOrderCycle(_ context.Context, orderCycleID uuid.UUID) (domain.OrderCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oc, ok := s.cycles[orderCycleID]
	if !ok {
		return domain.OrderCycle{}, domain.ErrNotFound
	}

	return oc, nil
}

func (s *store) ListBySchedules(_ context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[uuid.UUID][]domain.OrderCycle, len(scheduleIDs))
	for _, scheduleID := range scheduleIDs {
		for _, ocID := range s.schedules[scheduleID] {
			result[scheduleID] = append(result[scheduleID], s.cycles[ocID])
		}
	}

	return result, nil
}

func (s *store) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	order.Items = slices.Clone(order.Items)

	return order, nil
}

func (s *store) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New()
	order.Items = slices.Clone(order.Items)
	s.orders[order.ID] = order

	return order.ID, nil
}

func (s *store) DeleteOrderItem(_ context.Context, orderID, variantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.orders[orderID]
	order.Items = slices.DeleteFunc(slices.Clone(order.Items), func(item domain.OrderItem) bool {
		return item.VariantID == variantID
	})
	s.orders[orderID] = order

	return nil
}

func (s *store) AdvanceOrderState(_ context.Context, orderID uuid.UUID, state domain.OrderState, at time.Time) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.advanceErr != nil {
		return domain.Order{}, s.advanceErr
	}

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	if !order.State.CanAdvance(state) {
		return domain.Order{}, domain.ErrInvalidStateTransition
	}

	order.State = state
	order.CompletedAt = &at
	s.orders[orderID] = order

	return order, nil
}

func (s *store) GetVariants(_ context.Context, variantIDs []uuid.UUID) ([]domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Variant
	for _, id := range variantIDs {
		if v, ok := s.variants[id]; ok {
			result = append(result, v)
		}
	}

	return result, nil
}

func (s *store) OverridePrice(_ context.Context, _, variantID uuid.UUID) (decimal.NullDecimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.overrides[variantID]
	if !ok {
		return decimal.NullDecimal{}, nil
	}

	return decimal.NewNullDecimal(price), nil
}

// seeding helpers

func (s *store) addVariant(price string) domain.Variant {
	v := domain.Variant{
		ID:          uuid.New(),
		ProductName: "product " + price,
		ProducerID:  uuid.New(),
		Price:       domain.NewMoney(decimal.RequireFromString(price), currency.USD),
	}
	s.variants[v.ID] = v
	return v
}

// addCycle adds an order cycle distributing variants to shopID.
func (s *store) addCycle(shopID uuid.UUID, opensAt, closesAt time.Time, variants ...domain.Variant) domain.OrderCycle {
	oc := domain.OrderCycle{
		ID:            uuid.New(),
		CoordinatorID: shopID,
		Window:        domain.OrderCycleWindow{OpensAt: opensAt, ClosesAt: closesAt},
	}

	oc.Exchanges = []domain.Exchange{{
		ID:           uuid.New(),
		OrderCycleID: oc.ID,
		SenderID:     shopID,
		ReceiverID:   shopID,
		VariantIDs: func() []uuid.UUID {
			ids := make([]uuid.UUID, 0, len(variants))
			for _, v := range variants {
				ids = append(ids, v.ID)
			}
			return ids
		}(),
	}}

	s.cycles[oc.ID] = oc

	return oc
}

func (s *store) addSubscription(shopID, scheduleID uuid.UUID, beginsAt time.Time, items ...domain.SubscriptionLineItem) domain.Subscription {
	at := s.stamp()
	sub := domain.Subscription{
		ID:               uuid.New(),
		ShopID:           shopID,
		CustomerID:       uuid.New(),
		ScheduleID:       scheduleID,
		ShippingMethodID: uuid.New(),
		PaymentMethodID:  uuid.New(),
		BeginsAt:         beginsAt,
		LineItems:        items,
		CreatedAt:        at,
		UpdatedAt:        at,
	}
	s.subs[sub.ID] = sub
	return sub
}

func (s *store) addProxyOrder(subscriptionID, orderCycleID uuid.UUID) domain.ProxyOrder {
	at := s.stamp()
	po := domain.ProxyOrder{ID: uuid.New(), SubscriptionID: subscriptionID, OrderCycleID: orderCycleID, CreatedAt: at, UpdatedAt: at}
	s.proxyOrders[po.ID] = po
	return po
}

func lineItem(v domain.Variant, quantity int) domain.SubscriptionLineItem {
	return domain.SubscriptionLineItem{ID: uuid.New(), VariantID: v.ID, Quantity: quantity}
}

type MockSummaryNotifier struct {
	mock.Mock
}

func (m *MockSummaryNotifier) Notify(ctx context.Context, kind domain.SummaryKind, summary domain.ShopSummary) error {
	args := m.Called(ctx, kind, summary)
	return args.Error(0)
}
