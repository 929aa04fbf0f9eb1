package subscriptions

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type overrideKey struct {
	hubID, variantID uuid.UUID
}

// memStore is an in-memory implementation of every repository port.
type memStore struct {
	mu sync.Mutex

	subs            map[uuid.UUID]domain.Subscription
	proxyOrders     map[uuid.UUID]domain.ProxyOrder
	cycles          map[uuid.UUID]domain.OrderCycle
	schedules       map[uuid.UUID][]uuid.UUID
	variants        map[uuid.UUID]domain.Variant
	overrides       map[overrideKey]decimal.Decimal
	relationships   []domain.EnterpriseRelationship
	customers       map[uuid.UUID]domain.Customer
	shippingMethods map[uuid.UUID]domain.ShippingMethod
	paymentMethods  map[uuid.UUID]domain.PaymentMethod
	orders          map[uuid.UUID]domain.Order
	coordinatorFees map[uuid.UUID][]domain.EnterpriseFee
	exchangeFees    map[uuid.UUID][]domain.ExchangeFee

	// insertErrs fails InsertProxyOrder per subscription
	insertErrs map[uuid.UUID]error
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		subs:            make(map[uuid.UUID]domain.Subscription),
		proxyOrders:     make(map[uuid.UUID]domain.ProxyOrder),
		cycles:          make(map[uuid.UUID]domain.OrderCycle),
		schedules:       make(map[uuid.UUID][]uuid.UUID),
		variants:        make(map[uuid.UUID]domain.Variant),
		overrides:       make(map[overrideKey]decimal.Decimal),
		customers:       make(map[uuid.UUID]domain.Customer),
		shippingMethods: make(map[uuid.UUID]domain.ShippingMethod),
		paymentMethods:  make(map[uuid.UUID]domain.PaymentMethod),
		orders:          make(map[uuid.UUID]domain.Order),
		coordinatorFees: make(map[uuid.UUID][]domain.EnterpriseFee),
		exchangeFees:    make(map[uuid.UUID][]domain.ExchangeFee),
		insertErrs:      make(map[uuid.UUID]error),
	}
}

func (s *memStore) repos() port.Repositories {
	return port.Repositories{
		Subscriptions: s,
		ProxyOrders:   s,
		OrderCycles:   s,
		Orders:        s,
		Variants:      s,
		Overrides:     s,
		Enterprises:   s,
		Methods:       s,
		Fees:          s,
	}
}

type snapshot struct {
	subs        map[uuid.UUID]domain.Subscription
	proxyOrders map[uuid.UUID]domain.ProxyOrder
	orders      map[uuid.UUID]domain.Order
}

// Do restores subscriptions, proxy orders and orders when fn fails.
func (s *memStore) Do(_ context.Context, fn func(repos port.Repositories) error) error {
	s.mu.Lock()
	snap := snapshot{
		subs:        make(map[uuid.UUID]domain.Subscription, len(s.subs)),
		proxyOrders: maps.Clone(s.proxyOrders),
		orders:      maps.Clone(s.orders),
	}
	for id, sub := range s.subs {
		snap.subs[id] = cloneSubscription(sub)
	}
	s.mu.Unlock()

	if err := fn(s.repos()); err != nil {
		s.mu.Lock()
		s.subs, s.proxyOrders, s.orders = snap.subs, snap.proxyOrders, snap.orders
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *memStore) stamp() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

func cloneSubscription(sub domain.Subscription) domain.Subscription {
	sub.LineItems = slices.Clone(sub.LineItems)
	return sub
}

// SubscriptionRepository

func (s *memStore) GetSubscription(_ context.Context, subscriptionID uuid.UUID) (domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[subscriptionID]
	if !ok {
		return domain.Subscription{}, fmt.Errorf("subscription[%s]: %w", subscriptionID, domain.ErrNotFound)
	}

	return cloneSubscription(sub), nil
}

func (s *memStore) ListSyncable(_ context.Context, now time.Time) ([]domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subs []domain.Subscription
	for _, sub := range s.subs {
		if sub.Canceled() || (sub.EndsAt != nil && sub.EndsAt.Before(now)) {
			continue
		}
		subs = append(subs, cloneSubscription(sub))
	}

	slices.SortFunc(subs, func(a, b domain.Subscription) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return subs, nil
}

func (s *memStore) InsertSubscription(_ context.Context, sub domain.Subscription) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.New()
	sub.BillAddress.ID = uuid.New()
	sub.ShipAddress.ID = uuid.New()
	sub.CreatedAt = s.stamp()
	sub.UpdatedAt = sub.CreatedAt

	sub.LineItems = slices.Clone(sub.LineItems)
	for i := range sub.LineItems {
		sub.LineItems[i].ID = uuid.New()
		sub.LineItems[i].SubscriptionID = sub.ID
	}

	s.subs[sub.ID] = sub

	return sub.ID, nil
}

func (s *memStore) UpdateSubscription(_ context.Context, sub domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.subs[sub.ID]
	if !ok {
		return domain.ErrNotFound
	}

	sub.LineItems = current.LineItems
	sub.BillAddress.ID = current.BillAddress.ID
	sub.ShipAddress.ID = current.ShipAddress.ID
	sub.ShopID = current.ShopID
	sub.PausedAt = current.PausedAt
	sub.CanceledAt = current.CanceledAt
	sub.CreatedAt = current.CreatedAt
	sub.UpdatedAt = s.stamp()

	s.subs[sub.ID] = sub

	return nil
}

func (s *memStore) InsertLineItem(_ context.Context, subscriptionID uuid.UUID, item domain.SubscriptionLineItem) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[subscriptionID]
	if !ok {
		return uuid.Nil, domain.ErrNotFound
	}

	item.ID = uuid.New()
	item.SubscriptionID = subscriptionID
	sub.LineItems = append(slices.Clone(sub.LineItems), item)
	s.subs[subscriptionID] = sub

	return item.ID, nil
}

func (s *memStore) UpdateLineItem(_ context.Context, item domain.SubscriptionLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subs {
		idx := slices.IndexFunc(sub.LineItems, func(li domain.SubscriptionLineItem) bool { return li.ID == item.ID })
		if idx < 0 {
			continue
		}

		sub.LineItems = slices.Clone(sub.LineItems)
		item.SubscriptionID = id
		sub.LineItems[idx] = item
		s.subs[id] = sub
		return nil
	}

	return domain.ErrNotFound
}

func (s *memStore) DeleteLineItem(_ context.Context, lineItemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subs {
		idx := slices.IndexFunc(sub.LineItems, func(li domain.SubscriptionLineItem) bool { return li.ID == lineItemID })
		if idx < 0 {
			continue
		}

		sub.LineItems = slices.Delete(slices.Clone(sub.LineItems), idx, idx+1)
		s.subs[id] = sub
		return nil
	}

	return domain.ErrNotFound
}

func (s *memStore) SetPausedAt(_ context.Context, subscriptionID uuid.UUID, pausedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[subscriptionID]
	if !ok {
		return domain.ErrNotFound
	}

	sub.PausedAt = pausedAt
	s.subs[subscriptionID] = sub

	return nil
}

func (s *memStore) SetCanceledAt(_ context.Context, subscriptionID uuid.UUID, canceledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[subscriptionID]
	if !ok {
		return domain.ErrNotFound
	}

	sub.CanceledAt = &canceledAt
	s.subs[subscriptionID] = sub

	return nil
}

// ProxyOrderRepository

func (s *memStore) GetProxyOrder(_ context.Context, proxyOrderID uuid.UUID) (domain.ProxyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok {
		return domain.ProxyOrder{}, domain.ErrNotFound
	}

	return po, nil
}

func (s *memStore) ListBySubscription(_ context.Context, subscriptionID uuid.UUID) ([]domain.ProxyOrder, error) {
	return s.filterProxyOrders(func(po domain.ProxyOrder) bool { return po.SubscriptionID == subscriptionID }), nil
}

func (s *memStore) ListPlaceable(_ context.Context, now time.Time) ([]domain.ProxyOrder, error) {
	return s.filterProxyOrders(func(po domain.ProxyOrder) bool {
		sub := s.subs[po.SubscriptionID]
		return !po.Placed() && !po.Canceled() &&
			s.cycles[po.OrderCycleID].Window.IsOpen(now) &&
			!sub.Paused() && !sub.Canceled()
	}), nil
}

func (s *memStore) ListConfirmable(_ context.Context, closed domain.TimeRange) ([]domain.ProxyOrder, error) {
	if err := closed.Validate(); err != nil {
		return nil, err
	}

	return s.filterProxyOrders(func(po domain.ProxyOrder) bool {
		return po.Placed() && po.ConfirmedAt == nil &&
			s.cycles[po.OrderCycleID].Window.ClosesWithin(closed.From, closed.To)
	}), nil
}

func (s *memStore) filterProxyOrders(keep func(po domain.ProxyOrder) bool) []domain.ProxyOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.ProxyOrder
	for _, po := range s.proxyOrders {
		if keep(po) {
			result = append(result, po)
		}
	}

	slices.SortFunc(result, func(a, b domain.ProxyOrder) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return result
}

func (s *memStore) InsertProxyOrder(_ context.Context, subscriptionID, orderCycleID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.insertErrs[subscriptionID]; err != nil {
		return false, err
	}

	for _, po := range s.proxyOrders {
		if po.SubscriptionID == subscriptionID && po.OrderCycleID == orderCycleID {
			return false, nil
		}
	}

	at := s.stamp()
	po := domain.ProxyOrder{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		OrderCycleID:   orderCycleID,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	s.proxyOrders[po.ID] = po

	return true, nil
}

func (s *memStore) DeleteUnplaced(_ context.Context, proxyOrderID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok || po.Placed() || po.OrderID != nil {
		return false, nil
	}

	delete(s.proxyOrders, proxyOrderID)

	return true, nil
}

func (s *memStore) updateProxyOrder(proxyOrderID uuid.UUID, fn func(po *domain.ProxyOrder) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.proxyOrders[proxyOrderID]
	if !ok || !fn(&po) {
		return domain.ErrNotFound
	}

	s.proxyOrders[proxyOrderID] = po

	return nil
}

func (s *memStore) SetOrder(_ context.Context, proxyOrderID, orderID uuid.UUID) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) bool {
		po.OrderID = &orderID
		return true
	})
}

func (s *memStore) MarkPlaced(_ context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) bool {
		if po.Placed() {
			return false
		}
		po.PlacedAt = &at
		return true
	})
}

func (s *memStore) MarkConfirmed(_ context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	return s.updateProxyOrder(proxyOrderID, func(po *domain.ProxyOrder) bool {
		if po.ConfirmedAt != nil {
			return false
		}
		po.ConfirmedAt = &at
		return true
	})
}

func (s *memStore) CancelUnplaced(_ context.Context, subscriptionID uuid.UUID, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, po := range s.proxyOrders {
		if po.SubscriptionID != subscriptionID || po.Placed() || po.Canceled() {
			continue
		}
		if s.cycles[po.OrderCycleID].Window.IsClosed(now) {
			continue
		}

		po.CanceledAt = &now
		s.proxyOrders[id] = po
		n++
	}

	return n, nil
}

// OrderCycleRepository

func (s *memStore) GetOrderCycle(_ context.Context, orderCycleID uuid.UUID) (domain.OrderCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oc, ok := s.cycles[orderCycleID]
	if !ok {
		return domain.OrderCycle{}, domain.ErrNotFound
	}

	return oc, nil
}

func (s *memStore) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.OrderCycle, error) {
	bySchedule, err := s.ListBySchedules(ctx, []uuid.UUID{scheduleID})
	if err != nil {
		return nil, err
	}

	return bySchedule[scheduleID], nil
}

func (s *memStore) ListBySchedules(_ context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[uuid.UUID][]domain.OrderCycle, len(scheduleIDs))
	for _, scheduleID := range scheduleIDs {
		for _, ocID := range s.schedules[scheduleID] {
			result[scheduleID] = append(result[scheduleID], s.cycles[ocID])
		}
		slices.SortFunc(result[scheduleID], func(a, b domain.OrderCycle) int {
			return a.Window.ClosesAt.Compare(b.Window.ClosesAt)
		})
	}

	return result, nil
}

// OrderRepository

func (s *memStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	return order, nil
}

func (s *memStore) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New()
	if order.State == "" {
		order.State = domain.OrderStateCart
	}
	s.orders[order.ID] = order

	return order.ID, nil
}

func (s *memStore) DeleteOrderItem(_ context.Context, orderID, variantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}

	order.Items = slices.DeleteFunc(slices.Clone(order.Items), func(item domain.OrderItem) bool {
		return item.VariantID == variantID
	})
	s.orders[orderID] = order

	return nil
}

func (s *memStore) AdvanceOrderState(_ context.Context, orderID uuid.UUID, state domain.OrderState, at time.Time) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	if !order.State.CanAdvance(state) {
		return domain.Order{}, domain.ErrInvalidStateTransition
	}

	order.State = state
	order.LockVersion++
	if state == domain.OrderStateComplete {
		order.CompletedAt = &at
	}
	s.orders[orderID] = order

	return order, nil
}

// VariantRepository

func (s *memStore) GetVariants(_ context.Context, variantIDs []uuid.UUID) ([]domain.Variant, error) {
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

func (s *memStore) ListByProducers(_ context.Context, producerIDs []uuid.UUID) ([]domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Variant
	for _, v := range s.variants {
		if slices.Contains(producerIDs, v.ProducerID) && !v.Deleted() {
			result = append(result, v)
		}
	}

	return result, nil
}

func (s *memStore) ListOutgoingExchangeVariantIDs(_ context.Context, shopID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []uuid.UUID
	for _, oc := range s.cycles {
		for _, e := range oc.Exchanges {
			if e.Incoming || e.ReceiverID != shopID {
				continue
			}
			for _, id := range e.VariantIDs {
				if !slices.Contains(result, id) {
					result = append(result, id)
				}
			}
		}
	}

	return result, nil
}

// VariantOverrideRepository

func (s *memStore) OverridePrice(_ context.Context, hubID, variantID uuid.UUID) (decimal.NullDecimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.overrides[overrideKey{hubID: hubID, variantID: variantID}]
	if !ok {
		return decimal.NullDecimal{}, nil
	}

	return decimal.NewNullDecimal(price), nil
}

// EnterpriseRepository

func (s *memStore) GetEnterprises(_ context.Context, enterpriseIDs []uuid.UUID) ([]domain.Enterprise, error) {
	result := make([]domain.Enterprise, 0, len(enterpriseIDs))
	for _, id := range enterpriseIDs {
		result = append(result, domain.Enterprise{ID: id})
	}
	return result, nil
}

func (s *memStore) ListRelationshipsPermitting(_ context.Context, childID uuid.UUID) ([]domain.EnterpriseRelationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.EnterpriseRelationship
	for _, r := range s.relationships {
		if r.ChildID == childID {
			result = append(result, r)
		}
	}

	return result, nil
}

func (s *memStore) GetCustomer(_ context.Context, customerID uuid.UUID) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer[%s]: %w", customerID, domain.ErrNotFound)
	}

	return c, nil
}

// MethodRepository

func (s *memStore) GetShippingMethod(_ context.Context, shippingMethodID uuid.UUID) (domain.ShippingMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.shippingMethods[shippingMethodID]
	if !ok {
		return domain.ShippingMethod{}, domain.ErrNotFound
	}

	return m, nil
}

func (s *memStore) GetPaymentMethod(_ context.Context, paymentMethodID uuid.UUID) (domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.paymentMethods[paymentMethodID]
	if !ok {
		return domain.PaymentMethod{}, domain.ErrNotFound
	}

	return m, nil
}

// EnterpriseFeeRepository

func (s *memStore) ListCoordinatorFees(_ context.Context, orderCycleID uuid.UUID) ([]domain.EnterpriseFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coordinatorFees[orderCycleID], nil
}

func (s *memStore) ListExchangeFees(_ context.Context, orderCycleID uuid.UUID) ([]domain.ExchangeFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exchangeFees[orderCycleID], nil
}

// seeding helpers

func (s *memStore) addCycle(coordinatorID uuid.UUID, opensAt, closesAt time.Time, exchanges ...domain.Exchange) domain.OrderCycle {
	oc := domain.OrderCycle{
		ID:            uuid.New(),
		Name:          "cycle " + closesAt.Format(time.RFC3339),
		CoordinatorID: coordinatorID,
		Window:        domain.OrderCycleWindow{OpensAt: opensAt, ClosesAt: closesAt},
	}

	for _, e := range exchanges {
		e.ID = uuid.New()
		e.OrderCycleID = oc.ID
		oc.Exchanges = append(oc.Exchanges, e)
	}

	s.mu.Lock()
	s.cycles[oc.ID] = oc
	s.mu.Unlock()

	return oc
}

func (s *memStore) addSchedule(cycles ...domain.OrderCycle) uuid.UUID {
	id := uuid.New()
	s.setSchedule(id, cycles...)
	return id
}

func (s *memStore) setSchedule(scheduleID uuid.UUID, cycles ...domain.OrderCycle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schedules[scheduleID] = nil
	for _, oc := range cycles {
		s.schedules[scheduleID] = append(s.schedules[scheduleID], oc.ID)
	}
}

func (s *memStore) addVariant(producerID uuid.UUID, price string) domain.Variant {
	v := domain.Variant{
		ID:          uuid.New(),
		ProductName: "product " + price,
		ProducerID:  producerID,
		Price:       domain.NewMoney(decimal.RequireFromString(price), currency.USD),
	}

	s.mu.Lock()
	s.variants[v.ID] = v
	s.mu.Unlock()

	return v
}

func (s *memStore) addSubscription(sub domain.Subscription) domain.Subscription {
	id, _ := s.InsertSubscription(context.Background(), sub)
	sub, _ = s.GetSubscription(context.Background(), id)
	return sub
}

func (s *memStore) addProxyOrder(subscriptionID, orderCycleID uuid.UUID, placedAt *time.Time) domain.ProxyOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.stamp()
	po := domain.ProxyOrder{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		OrderCycleID:   orderCycleID,
		PlacedAt:       placedAt,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	s.proxyOrders[po.ID] = po

	return po
}

func (s *memStore) proxyOrderCycles(subscriptionID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, po := range s.filterProxyOrders(func(po domain.ProxyOrder) bool { return po.SubscriptionID == subscriptionID }) {
		ids = append(ids, po.OrderCycleID)
	}
	return ids
}
