package tracking

import (
	"context"
	"time"

	"foodtruck-storefront/internal/logger"
	"foodtruck-storefront/internal/models"
)

// OrderFetcher is the order-lookup collaborator
type OrderFetcher interface {
	GetOrder(ctx context.Context, trackingCode string) (*models.Order, error)
}

// Update is one observed poll result. Either Order is a fresh snapshot
// that replaces the previously displayed one wholesale, or Err marks a
// transient fetch failure; a failed poll never clears the last good
// snapshot, the receiver just keeps what it has.
type Update struct {
	Order *models.Order
	Stage int
	Err   error
}

// Tracker polls the order-lookup collaborator for one tracking code at a
// fixed interval.
type Tracker struct {
	api      OrderFetcher
	logger   *logger.Logger
	interval time.Duration
}

func New(api OrderFetcher, log *logger.Logger, interval time.Duration) *Tracker {
	return &Tracker{
		api:      api,
		logger:   log,
		interval: interval,
	}
}

// Track fetches the order immediately and then on every tick until ctx is
// cancelled. The returned channel closes on cancellation; the timer is
// owned by the loop and is always released. A fetch completing after
// cancellation is discarded, never delivered, so a torn-down view cannot
// receive a late write. Poll failures are reported as transient updates
// and the loop retries unconditionally on the next tick.
func (t *Tracker) Track(ctx context.Context, trackingCode string) <-chan Update {
	updates := make(chan Update)

	go func() {
		defer close(updates)

		requestID := logger.GenerateRequestID()
		t.logger.Info("tracking_started", "Started tracking order", requestID, map[string]interface{}{
			"tracking_code": trackingCode,
			"poll_interval": t.interval.String(),
		})

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		if !t.poll(ctx, trackingCode, requestID, updates) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				t.logger.Info("tracking_stopped", "Stopped tracking order", requestID, map[string]interface{}{
					"tracking_code": trackingCode,
				})
				return
			case <-ticker.C:
				if !t.poll(ctx, trackingCode, requestID, updates) {
					return
				}
			}
		}
	}()

	return updates
}

// poll performs one fetch and delivers its result. It returns false when
// the tracking context is gone and the loop must exit.
func (t *Tracker) poll(ctx context.Context, trackingCode, requestID string, updates chan<- Update) bool {
	order, err := t.api.GetOrder(ctx, trackingCode)

	// The fetch may have completed after teardown; check before touching
	// the channel so a stale result is dropped on the floor.
	if ctx.Err() != nil {
		return false
	}

	var update Update
	if err != nil {
		t.logger.Error("order_fetch_failed", "Failed to fetch order status", requestID, err, map[string]interface{}{
			"tracking_code": trackingCode,
		})
		update = Update{Err: err}
	} else {
		update = Update{Order: order, Stage: models.StageIndex(order.Status)}
		t.logger.Debug("order_fetched", "Fetched order status", requestID, map[string]interface{}{
			"tracking_code": trackingCode,
			"status":        string(order.Status),
			"stage":         update.Stage,
		})
	}

	select {
	case <-ctx.Done():
		return false
	case updates <- update:
		return true
	}
}
