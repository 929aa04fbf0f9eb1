package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixtures seeds catalog rows that have no repository of their own.
type fixtures struct {
	pool *pgxpool.Pool
}

func (f fixtures) insertID(t *testing.T, query string, args ...any) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := f.pool.QueryRow(context.Background(), query, args...).Scan(&id)
	require.NoError(t, err)

	return id
}

func (f fixtures) exec(t *testing.T, query string, args ...any) {
	t.Helper()

	_, err := f.pool.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}

func (f fixtures) enterprise(t *testing.T, primaryProducer bool) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO enterprises (name, is_primary_producer) VALUES ($1, $2) RETURNING id`,
		gofakeit.Company(), primaryProducer)
}

func (f fixtures) relationship(t *testing.T, parentID, childID uuid.UUID, permissions ...domain.Permission) uuid.UUID {
	perms := make([]string, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, string(p))
	}

	return f.insertID(t,
		`INSERT INTO enterprise_relationships (parent_id, child_id, permissions) VALUES ($1, $2, $3) RETURNING id`,
		parentID, childID, perms)
}

func (f fixtures) customer(t *testing.T, enterpriseID uuid.UUID) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO customers (enterprise_id, email, name) VALUES ($1, $2, $3) RETURNING id`,
		enterpriseID, gofakeit.Email(), gofakeit.Name())
}

func (f fixtures) variant(t *testing.T, producerID uuid.UUID, price string) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO variants (product_name, producer_id, price_amount, price_currency) VALUES ($1, $2, $3, 'USD') RETURNING id`,
		gofakeit.ProductName(), producerID, decimal.RequireFromString(price))
}

func (f fixtures) deleteVariant(t *testing.T, variantID uuid.UUID) {
	f.exec(t, `UPDATE variants SET deleted_at = NOW() WHERE id = $1`, variantID)
}

func (f fixtures) override(t *testing.T, hubID, variantID uuid.UUID, price *decimal.Decimal) {
	f.exec(t,
		`INSERT INTO variant_overrides (hub_id, variant_id, price) VALUES ($1, $2, $3)`,
		hubID, variantID, price)
}

func (f fixtures) orderCycle(t *testing.T, coordinatorID uuid.UUID, opensAt, closesAt time.Time) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO order_cycles (name, coordinator_id, orders_open_at, orders_close_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		gofakeit.Word(), coordinatorID, opensAt, closesAt)
}

func (f fixtures) exchange(t *testing.T, orderCycleID, senderID, receiverID uuid.UUID, incoming bool, variantIDs ...uuid.UUID) uuid.UUID {
	id := f.insertID(t,
		`INSERT INTO exchanges (order_cycle_id, sender_id, receiver_id, incoming) VALUES ($1, $2, $3, $4) RETURNING id`,
		orderCycleID, senderID, receiverID, incoming)

	for _, variantID := range variantIDs {
		f.exec(t, `INSERT INTO exchange_variants (exchange_id, variant_id) VALUES ($1, $2)`, id, variantID)
	}

	return id
}

func (f fixtures) enterpriseFee(t *testing.T, enterpriseID uuid.UUID, calc domain.Calculator) uuid.UUID {
	var kind *string
	if calc.Kind != "" {
		k := string(calc.Kind)
		kind = &k
	}

	return f.insertID(t,
		`INSERT INTO enterprise_fees (enterprise_id, name, calculator_kind, calculator_amount, calculator_percent)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		enterpriseID, gofakeit.Word(), kind, calc.Amount, calc.Percent)
}

func (f fixtures) coordinatorFee(t *testing.T, orderCycleID, feeID uuid.UUID) {
	f.exec(t, `INSERT INTO coordinator_fees (order_cycle_id, enterprise_fee_id) VALUES ($1, $2)`, orderCycleID, feeID)
}

func (f fixtures) exchangeFee(t *testing.T, exchangeID, feeID uuid.UUID) {
	f.exec(t, `INSERT INTO exchange_fees (exchange_id, enterprise_fee_id) VALUES ($1, $2)`, exchangeID, feeID)
}

func (f fixtures) schedule(t *testing.T, orderCycleIDs ...uuid.UUID) uuid.UUID {
	id := f.insertID(t, `INSERT INTO schedules (name) VALUES ($1) RETURNING id`, gofakeit.Word())

	for _, ocID := range orderCycleIDs {
		f.exec(t, `INSERT INTO order_cycle_schedules (schedule_id, order_cycle_id) VALUES ($1, $2)`, id, ocID)
	}

	return id
}

func (f fixtures) shippingMethod(t *testing.T, distributorID uuid.UUID, calc domain.Calculator) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO shipping_methods (distributor_id, name, calculator_kind, calculator_amount, calculator_percent)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		distributorID, gofakeit.Word(), string(calc.Kind), calc.Amount, calc.Percent)
}

func (f fixtures) paymentMethod(t *testing.T, distributorID uuid.UUID, calc domain.Calculator) uuid.UUID {
	return f.insertID(t,
		`INSERT INTO payment_methods (distributor_id, name, calculator_kind, calculator_amount, calculator_percent)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		distributorID, gofakeit.Word(), string(calc.Kind), calc.Amount, calc.Percent)
}

// shop is a distributor with the rows a subscription references.
type shop struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	ShippingMethodID uuid.UUID
	PaymentMethodID  uuid.UUID
}

func (f fixtures) shop(t *testing.T) shop {
	shopID := f.enterprise(t, false)

	return shop{
		ID:               shopID,
		CustomerID:       f.customer(t, shopID),
		ShippingMethodID: f.shippingMethod(t, shopID, domain.Calculator{Kind: domain.CalculatorFlatRate, Amount: decimal.NewFromInt(5)}),
		PaymentMethodID:  f.paymentMethod(t, shopID, domain.Calculator{Kind: domain.CalculatorFlatPercentItemTotal, Percent: decimal.NewFromInt(2)}),
	}
}

func randomAddress() domain.Address {
	a := gofakeit.Address()

	return domain.Address{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Address1:  a.Street,
		City:      a.City,
		Zipcode:   a.Zip,
		Phone:     gofakeit.Phone(),
		Country:   a.Country,
	}
}

func randomSubscription(s shop, scheduleID uuid.UUID, beginsAt time.Time) domain.Subscription {
	return domain.Subscription{
		ShopID:              s.ID,
		CustomerID:          s.CustomerID,
		ScheduleID:          scheduleID,
		PaymentMethodID:     s.PaymentMethodID,
		ShippingMethodID:    s.ShippingMethodID,
		BillAddress:         randomAddress(),
		ShipAddress:         randomAddress(),
		BeginsAt:            beginsAt,
		ShippingFeeEstimate: decimal.NewFromInt(5),
		PaymentFeeEstimate:  decimal.RequireFromString("0.4"),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
