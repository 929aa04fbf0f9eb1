package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLifecycle(store *memStore) *Lifecycle {
	l := NewLifecycle(store, nil)
	l.nowFunc = fixedNow
	return l
}

func TestPauseUnpause(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := newTestLifecycle(store)

	sub := store.addSubscription(domain.Subscription{ScheduleID: uuid.New(), BeginsAt: testNow})

	require.NoError(t, l.Pause(ctx, sub.ID))

	paused, err := store.GetSubscription(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, paused.PausedAt)
	assert.Equal(t, testNow, *paused.PausedAt)
	assert.Equal(t, domain.SubscriptionPaused, paused.State(testNow))

	// pausing again keeps the original timestamp
	l.nowFunc = func() time.Time { return testNow.Add(time.Hour) }
	require.NoError(t, l.Pause(ctx, sub.ID))

	paused, err = store.GetSubscription(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, testNow, *paused.PausedAt)

	require.NoError(t, l.Unpause(ctx, sub.ID))
	require.NoError(t, l.Unpause(ctx, sub.ID))

	resumed, err := store.GetSubscription(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, resumed.PausedAt)
	assert.Equal(t, domain.SubscriptionActive, resumed.State(testNow))
}

func TestPausePendingAndEnded(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := newTestLifecycle(store)

	ended := testNow.Add(-time.Hour)
	subs := map[domain.SubscriptionState]domain.Subscription{
		domain.SubscriptionPending: store.addSubscription(domain.Subscription{ScheduleID: uuid.New(), BeginsAt: testNow.Add(24 * time.Hour)}),
		domain.SubscriptionEnded:   store.addSubscription(domain.Subscription{ScheduleID: uuid.New(), BeginsAt: testNow.Add(-48 * time.Hour), EndsAt: &ended}),
	}

	for state, sub := range subs {
		require.Equal(t, state, sub.State(testNow))
		require.NoError(t, l.Pause(ctx, sub.ID))

		paused, err := store.GetSubscription(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SubscriptionPaused, paused.State(testNow))

		require.NoError(t, l.Unpause(ctx, sub.ID))

		resumed, err := store.GetSubscription(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, state, resumed.State(testNow))
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := newTestLifecycle(store)

	closed := store.addCycle(uuid.New(), testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	open := store.addCycle(uuid.New(), testNow.Add(-time.Hour), testNow.Add(time.Hour))
	upcoming := store.addCycle(uuid.New(), testNow.Add(time.Hour), testNow.Add(24*time.Hour))
	placedCycle := store.addCycle(uuid.New(), testNow.Add(-time.Hour), testNow.Add(2*time.Hour))

	sub := store.addSubscription(domain.Subscription{ScheduleID: uuid.New(), BeginsAt: testNow.Add(-72 * time.Hour)})

	inClosed := store.addProxyOrder(sub.ID, closed.ID, nil)
	inOpen := store.addProxyOrder(sub.ID, open.ID, nil)
	inUpcoming := store.addProxyOrder(sub.ID, upcoming.ID, nil)
	placed := store.addProxyOrder(sub.ID, placedCycle.ID, lo.ToPtr(testNow.Add(-time.Minute)))

	canceled, err := l.Cancel(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), canceled)

	stored, err := store.GetSubscription(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionCanceled, stored.State(testNow))

	for _, tc := range []struct {
		po           domain.ProxyOrder
		wantCanceled bool
	}{
		{po: inClosed, wantCanceled: false},
		{po: inOpen, wantCanceled: true},
		{po: inUpcoming, wantCanceled: true},
		{po: placed, wantCanceled: false},
	} {
		got, err := store.GetProxyOrder(ctx, tc.po.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.wantCanceled, got.Canceled(), "proxy order in cycle %s", tc.po.OrderCycleID)
	}

	_, err = l.Cancel(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrSubscriptionCanceled)

	assert.ErrorIs(t, l.Pause(ctx, sub.ID), ErrSubscriptionCanceled)
	assert.ErrorIs(t, l.Unpause(ctx, sub.ID), ErrSubscriptionCanceled)

	// the syncer leaves canceled subscriptions alone
	result, err := newTestSyncer(t, store, Single(stored)).Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{}, result)
}

func TestLifecycleUnknownSubscription(t *testing.T) {
	ctx := context.Background()
	l := newTestLifecycle(newMemStore())

	assert.ErrorIs(t, l.Pause(ctx, uuid.New()), domain.ErrNotFound)

	_, err := l.Cancel(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
