package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/fees"
	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// FormParams are the attributes a shop manager submits for a subscription.
type FormParams struct {
	CustomerID       uuid.UUID
	ScheduleID       uuid.UUID
	PaymentMethodID  uuid.UUID
	ShippingMethodID uuid.UUID
	BillAddress      domain.Address
	ShipAddress      domain.Address
	BeginsAt         time.Time
	EndsAt           *time.Time
	LineItems        []domain.LineItemParams
}

// Form creates and updates subscriptions together with their line items and
// addresses, then re-estimates prices and syncs proxy orders in one transaction.
type Form struct {
	uow      port.UnitOfWork
	validate *validator.Validate
	logger   *zap.Logger
	nowFunc  func() time.Time
}

func NewForm(uow port.UnitOfWork, log *zap.Logger) *Form {
	return &Form{
		uow:      uow,
		validate: newValidator(),
		logger:   logger.OrNop(log),
		nowFunc:  time.Now,
	}
}

// Create returns *FormErrors when params are invalid, nothing is persisted then.
func (f *Form) Create(ctx context.Context, shopID uuid.UUID, params FormParams) (domain.Subscription, error) {
	return f.save(ctx, domain.Subscription{ShopID: shopID}, params)
}

// Update returns *FormErrors when params are invalid, nothing is persisted then.
// The shop of a subscription never changes.
func (f *Form) Update(ctx context.Context, subscriptionID uuid.UUID, params FormParams) (domain.Subscription, error) {
	return f.save(ctx, domain.Subscription{ID: subscriptionID}, params)
}

func (f *Form) save(ctx context.Context, target domain.Subscription, params FormParams) (domain.Subscription, error) {
	var saved domain.Subscription

	err := f.uow.Do(ctx, func(repos port.Repositories) error {
		current := target
		if target.Persisted() {
			var err error
			current, err = repos.Subscriptions.GetSubscription(ctx, target.ID)
			if err != nil {
				return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
			}
			if current.Canceled() {
				return ErrSubscriptionCanceled
			}
		}

		sub, changes, err := assign(current, params)
		if err != nil {
			return err
		}

		if err := f.validateSubscription(ctx, repos, sub); err != nil {
			return err
		}

		if err := f.estimator(repos).Estimate(ctx, &sub); err != nil {
			return fmt.Errorf("estimator.Estimate: %w", err)
		}

		if err := persist(ctx, repos.Subscriptions, &sub, changes); err != nil {
			return fmt.Errorf("persist: %w", err)
		}

		saved, err = repos.Subscriptions.GetSubscription(ctx, sub.ID)
		if err != nil {
			return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
		}

		if !needsSync(current, saved) {
			return nil
		}

		syncer, err := NewProxyOrderSyncer(Single(saved), repos.OrderCycles, repos.ProxyOrders, f.logger)
		if err != nil {
			return fmt.Errorf("NewProxyOrderSyncer: %w", err)
		}
		syncer.SetClock(f.nowFunc)

		if _, err := syncer.Sync(ctx); err != nil {
			return fmt.Errorf("syncer.Sync: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("uow.Do: %w", err)
	}

	f.logger.Info("subscription saved",
		zap.String("subscription_id", saved.ID.String()),
		zap.String("shop_id", saved.ShopID.String()))

	return saved, nil
}

// assign applies params to a copy of current.
func assign(current domain.Subscription, params FormParams) (domain.Subscription, domain.LineItemChanges, error) {
	changes, err := domain.DiffLineItems(current.LineItems, params.LineItems)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownLineItem) {
			var fe FormErrors
			fe.Add("line_items", err.Error())
			return domain.Subscription{}, domain.LineItemChanges{}, &fe
		}
		return domain.Subscription{}, domain.LineItemChanges{}, fmt.Errorf("domain.DiffLineItems: %w", err)
	}

	sub := current
	sub.CustomerID = params.CustomerID
	sub.ScheduleID = params.ScheduleID
	sub.PaymentMethodID = params.PaymentMethodID
	sub.ShippingMethodID = params.ShippingMethodID
	sub.BeginsAt = params.BeginsAt
	sub.EndsAt = params.EndsAt

	sub.BillAddress = params.BillAddress
	sub.BillAddress.ID = current.BillAddress.ID
	sub.ShipAddress = params.ShipAddress
	sub.ShipAddress.ID = current.ShipAddress.ID

	sub.LineItems = changes.Apply(current.LineItems)

	return sub, changes, nil
}

func (f *Form) validateSubscription(ctx context.Context, repos port.Repositories, sub domain.Subscription) error {
	var fe FormErrors

	if err := f.validate.Struct(sub); err != nil {
		if err := fe.addValidationErrors(err); err != nil {
			return fmt.Errorf("validate.Struct: %w", err)
		}
	}

	if len(sub.LineItems) == 0 {
		fe.Add("line_items", "at least one line item is required")
	}

	checks := []func(context.Context, port.Repositories, domain.Subscription, *FormErrors) error{
		validateCustomer,
		validateMethods,
		validateSchedule,
		f.validateVariants,
	}

	for _, check := range checks {
		if err := check(ctx, repos, sub, &fe); err != nil {
			return err
		}
	}

	if !fe.Empty() {
		return &fe
	}

	return nil
}

func validateCustomer(ctx context.Context, repos port.Repositories, sub domain.Subscription, fe *FormErrors) error {
	if sub.CustomerID == uuid.Nil {
		return nil
	}

	customer, err := repos.Enterprises.GetCustomer(ctx, sub.CustomerID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fe.Add("customer", "does not exist")
	case err != nil:
		return fmt.Errorf("repos.Enterprises.GetCustomer: %w", err)
	case customer.EnterpriseID != sub.ShopID:
		fe.Add("customer", "does not belong to the shop")
	}

	return nil
}

func validateMethods(ctx context.Context, repos port.Repositories, sub domain.Subscription, fe *FormErrors) error {
	if sub.ShippingMethodID != uuid.Nil {
		method, err := repos.Methods.GetShippingMethod(ctx, sub.ShippingMethodID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			fe.Add("shipping_method", "does not exist")
		case err != nil:
			return fmt.Errorf("repos.Methods.GetShippingMethod: %w", err)
		case method.DistributorID != sub.ShopID:
			fe.Add("shipping_method", "is not available to the shop")
		}
	}

	if sub.PaymentMethodID != uuid.Nil {
		method, err := repos.Methods.GetPaymentMethod(ctx, sub.PaymentMethodID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			fe.Add("payment_method", "does not exist")
		case err != nil:
			return fmt.Errorf("repos.Methods.GetPaymentMethod: %w", err)
		case method.DistributorID != sub.ShopID:
			fe.Add("payment_method", "is not available to the shop")
		}
	}

	return nil
}

func validateSchedule(ctx context.Context, repos port.Repositories, sub domain.Subscription, fe *FormErrors) error {
	if sub.ScheduleID == uuid.Nil {
		return nil
	}

	cycles, err := repos.OrderCycles.ListBySchedule(ctx, sub.ScheduleID)
	if err != nil {
		return fmt.Errorf("repos.OrderCycles.ListBySchedule: %w", err)
	}

	coordinated := lo.ContainsBy(cycles, func(oc domain.OrderCycle) bool {
		return oc.CoordinatorID == sub.ShopID
	})
	if !coordinated {
		fe.Add("schedule", "is not coordinated by the shop")
	}

	return nil
}

func (f *Form) validateVariants(ctx context.Context, repos port.Repositories, sub domain.Subscription, fe *FormErrors) error {
	if len(sub.LineItems) == 0 || sub.ScheduleID == uuid.Nil {
		return nil
	}

	list := f.variantsList(repos)

	eligible, err := list.EligibleVariants(ctx, sub.ShopID)
	if err != nil {
		return fmt.Errorf("list.EligibleVariants: %w", err)
	}

	eligibleIDs := lo.SliceToMap(eligible, func(v domain.Variant) (uuid.UUID, struct{}) { return v.ID, struct{}{} })

	variantIDs := lo.Uniq(lo.Map(sub.LineItems, func(li domain.SubscriptionLineItem, _ int) uuid.UUID { return li.VariantID }))
	for _, variantID := range variantIDs {
		if variantID == uuid.Nil {
			continue
		}

		if _, ok := eligibleIDs[variantID]; !ok {
			fe.Add("line_items", fmt.Sprintf("variant %s is not available to the shop", variantID))
			continue
		}

		available, err := list.InOpenAndUpcomingOrderCycles(ctx, sub.ShopID, sub.ScheduleID, variantID)
		if err != nil {
			return fmt.Errorf("list.InOpenAndUpcomingOrderCycles: %w", err)
		}
		if !available {
			fe.Add("line_items", fmt.Sprintf("variant %s is not available in an open or upcoming order cycle", variantID))
		}
	}

	return nil
}

func persist(ctx context.Context, subs port.SubscriptionRepository, sub *domain.Subscription, changes domain.LineItemChanges) error {
	if !sub.Persisted() {
		id, err := subs.InsertSubscription(ctx, *sub)
		if err != nil {
			return fmt.Errorf("subs.InsertSubscription: %w", err)
		}
		sub.ID = id
		return nil
	}

	if err := subs.UpdateSubscription(ctx, *sub); err != nil {
		return fmt.Errorf("subs.UpdateSubscription: %w", err)
	}

	for _, li := range changes.Delete {
		if err := subs.DeleteLineItem(ctx, li.ID); err != nil {
			return fmt.Errorf("subs.DeleteLineItem: %w", err)
		}
	}

	// estimates change for untouched items too
	for _, li := range sub.LineItems {
		if li.ID == uuid.Nil {
			if _, err := subs.InsertLineItem(ctx, sub.ID, li); err != nil {
				return fmt.Errorf("subs.InsertLineItem: %w", err)
			}
			continue
		}

		if err := subs.UpdateLineItem(ctx, li); err != nil {
			return fmt.Errorf("subs.UpdateLineItem: %w", err)
		}
	}

	return nil
}

func needsSync(before, after domain.Subscription) bool {
	if !before.Persisted() {
		return true
	}

	return before.ScheduleID != after.ScheduleID ||
		!before.BeginsAt.Equal(after.BeginsAt) ||
		!equalTime(before.EndsAt, after.EndsAt)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (f *Form) variantsList(repos port.Repositories) *VariantsList {
	list := NewVariantsList(repos.Variants, repos.Enterprises, repos.OrderCycles)
	list.nowFunc = f.nowFunc
	return list
}

func (f *Form) estimator(repos port.Repositories) *Estimator {
	estimator := NewEstimator(repos.OrderCycles, repos.Variants, repos.Overrides, repos.Methods, fees.NewFactory(repos.Fees))
	estimator.nowFunc = f.nowFunc
	return estimator
}
