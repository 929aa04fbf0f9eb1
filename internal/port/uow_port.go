package port

import "context"

// Repositories share one transaction when handed out by a UnitOfWork.
type Repositories struct {
	Subscriptions SubscriptionRepository
	ProxyOrders   ProxyOrderRepository
	OrderCycles   OrderCycleRepository
	Orders        OrderRepository
	Variants      VariantRepository
	Overrides     VariantOverrideRepository
	Enterprises   EnterpriseRepository
	Methods       MethodRepository
	Fees          EnterpriseFeeRepository
}

type UnitOfWork interface {
	// Do runs fn in a transaction, committing when fn returns nil.
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
