package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"foodtruck-storefront/internal/logger"
	"foodtruck-storefront/internal/models"
	"foodtruck-storefront/internal/services/cart"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission is still outstanding.
var ErrSubmitInFlight = errors.New("order submission already in flight")

// OrderPlacer is the order-placement collaborator
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.OrderResult, error)
}

// Service turns a validated cart into exactly one order-placement request
// per user-initiated submit.
type Service struct {
	api      OrderPlacer
	logger   *logger.Logger
	inFlight atomic.Bool
}

func NewService(api OrderPlacer, log *logger.Logger) *Service {
	return &Service{
		api:    api,
		logger: log,
	}
}

// Submit validates the checkout preconditions and places the order. On
// failure the cart and contact fields are left untouched so the user can
// retry without re-entering anything; on success the caller clears the
// cart and hands the tracking code to the tracker. At most one submission
// is in flight at a time.
func (s *Service) Submit(ctx context.Context, truckID int, c *cart.Cart, contact ContactInfo) (*models.OrderResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	requestID := logger.GenerateRequestID()

	if err := validateSubmission(contact, c); err != nil {
		s.logger.Error("validation_failed", "Checkout validation failed", requestID, err, map[string]interface{}{
			"truck_id": truckID,
		})
		return nil, err
	}

	req := buildRequest(truckID, c, contact)

	s.logger.Debug("order_submitting", "Submitting order", requestID, map[string]interface{}{
		"truck_id":     truckID,
		"line_count":   len(req.Items),
		"item_count":   c.TotalItemCount(),
		"total_amount": c.TotalPrice(),
	})

	result, err := s.api.PlaceOrder(ctx, req)
	if err != nil {
		s.logger.Error("order_submission_failed", "Failed to place order", requestID, err, map[string]interface{}{
			"truck_id": truckID,
		})
		return nil, err
	}

	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_id":      result.ID,
		"tracking_code": result.TrackingCode,
	})

	return result, nil
}

// buildRequest maps cart lines into the submission shape. Absent size and
// options are omitted, not sent as null.
func buildRequest(truckID int, c *cart.Cart, contact ContactInfo) *models.PlaceOrderRequest {
	lines := c.Lines()
	items := make([]models.PlaceOrderItem, 0, len(lines))

	for _, line := range lines {
		item := models.PlaceOrderItem{
			MenuItemID: line.Item.ID,
			Quantity:   line.Quantity,
		}
		if line.Size != nil {
			sizeID := line.Size.ID
			item.SizeID = &sizeID
		}
		if len(line.Options) > 0 {
			item.OptionIDs = make([]int, len(line.Options))
			for i, option := range line.Options {
				item.OptionIDs[i] = option.ID
			}
		}
		items = append(items, item)
	}

	return &models.PlaceOrderRequest{
		TruckID:       truckID,
		CustomerName:  contact.CustomerName,
		CustomerPhone: contact.CustomerPhone,
		PaymentToken:  contact.PaymentToken,
		Items:         items,
	}
}
