package subscriptions

import "errors"

var (
	ErrInvalidSyncTarget    = errors.New("invalid sync target")
	ErrSubscriptionCanceled = errors.New("subscription is canceled")
)
