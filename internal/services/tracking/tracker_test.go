package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtruck-storefront/internal/logger"
	"foodtruck-storefront/internal/models"
)

// scriptedFetcher returns the configured results in sequence, repeating
// the last one once the script runs out.
type scriptedFetcher struct {
	mu      sync.Mutex
	orders  []*models.Order
	errs    []error
	fetches int
}

func (f *scriptedFetcher) GetOrder(ctx context.Context, trackingCode string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.fetches
	if i >= len(f.orders) {
		i = len(f.orders) - 1
	}
	f.fetches++
	return f.orders[i], f.errs[i]
}

func (f *scriptedFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func order(status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:           41,
		Status:       status,
		TotalAmount:  25.50,
		CustomerName: "Ana",
		Items:        []models.OrderItem{{ItemName: "Pizza", Quantity: 2, Price: 8.50}},
	}
}

func TestTrack_ImmediateFetchAndStageMapping(t *testing.T) {
	fetcher := &scriptedFetcher{
		orders: []*models.Order{order(models.StatusCooking)},
		errs:   []error{nil},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := New(fetcher, logger.New("tracking-test"), time.Hour)
	updates := tracker.Track(ctx, "TRK-9f2")

	select {
	case update := <-updates:
		require.NoError(t, update.Err)
		require.NotNil(t, update.Order)
		assert.Equal(t, models.StatusCooking, update.Order.Status)
		assert.Equal(t, 2, update.Stage, "Cooking is stage index 2")
	case <-time.After(time.Second):
		t.Fatal("no immediate fetch before the first tick")
	}
}

func TestTrack_UnrecognizedStatusFallsBackToStageZero(t *testing.T) {
	fetcher := &scriptedFetcher{
		orders: []*models.Order{order(models.OrderStatus("Refunded"))},
		errs:   []error{nil},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := New(fetcher, logger.New("tracking-test"), time.Hour)
	updates := tracker.Track(ctx, "TRK-9f2")

	update := <-updates
	require.NoError(t, update.Err)
	assert.Equal(t, 0, update.Stage)
	assert.Equal(t, models.OrderStatus("Refunded"), update.Order.Status, "the raw status is preserved")
}

func TestTrack_PollFailureDoesNotStopLoop(t *testing.T) {
	fetcher := &scriptedFetcher{
		orders: []*models.Order{order(models.StatusPaid), nil, order(models.StatusReady)},
		errs:   []error{nil, errors.New("connection reset"), nil},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := New(fetcher, logger.New("tracking-test"), 10*time.Millisecond)
	updates := tracker.Track(ctx, "TRK-9f2")

	first := <-updates
	require.NoError(t, first.Err)
	assert.Equal(t, 1, first.Stage)

	second := <-updates
	require.Error(t, second.Err)
	assert.Nil(t, second.Order, "a failed poll carries no snapshot")

	third := <-updates
	require.NoError(t, third.Err)
	assert.Equal(t, 3, third.Stage, "the loop keeps polling after a failure")
}

func TestTrack_CancelClosesChannel(t *testing.T) {
	fetcher := &scriptedFetcher{
		orders: []*models.Order{order(models.StatusPending)},
		errs:   []error{nil},
	}

	ctx, cancel := context.WithCancel(context.Background())

	tracker := New(fetcher, logger.New("tracking-test"), 5*time.Millisecond)
	updates := tracker.Track(ctx, "TRK-9f2")

	<-updates
	cancel()

	// Drain: the channel must close without further blocking
	closed := false
	deadline := time.After(time.Second)
	for !closed {
		select {
		case _, ok := <-updates:
			if !ok {
				closed = true
			}
		case <-deadline:
			t.Fatal("updates channel did not close after cancellation")
		}
	}
}

// A fetch in flight at cancellation time must not deliver its result.
type blockingFetcher struct {
	entered  chan struct{}
	release  chan struct{}
	enterOne sync.Once
}

func (f *blockingFetcher) GetOrder(ctx context.Context, trackingCode string) (*models.Order, error) {
	f.enterOne.Do(func() { close(f.entered) })
	<-f.release
	return order(models.StatusReady), nil
}

func TestTrack_NoLateWriteAfterCancel(t *testing.T) {
	fetcher := &blockingFetcher{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())

	tracker := New(fetcher, logger.New("tracking-test"), time.Hour)
	updates := tracker.Track(ctx, "TRK-9f2")

	// Cancel while the first fetch is still outstanding, then let it finish
	<-fetcher.entered
	cancel()
	close(fetcher.release)

	select {
	case update, ok := <-updates:
		require.False(t, ok, "expected channel close, got late update %+v", update)
	case <-time.After(time.Second):
		t.Fatal("updates channel did not close")
	}
}
