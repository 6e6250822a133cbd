package models

import "time"

// OrderStatus represents the status of an order as reported by the server
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusCooking   OrderStatus = "Cooking"
	StatusReady     OrderStatus = "Ready"
	StatusCompleted OrderStatus = "Completed"
)

// ProgressStages is the ordered stage vocabulary used to render order
// progress. The server may report statuses outside this list.
var ProgressStages = []OrderStatus{
	StatusPending,
	StatusPaid,
	StatusCooking,
	StatusReady,
	StatusCompleted,
}

// StageIndex maps a status onto its position in ProgressStages. An
// unrecognized status maps to stage 0 so tracking under-reports progress
// instead of failing.
func StageIndex(status OrderStatus) int {
	for i, stage := range ProgressStages {
		if stage == status {
			return i
		}
	}
	return 0
}

// PlaceOrderItem is one submitted line of an order. Size and options are
// omitted from the payload when absent, never sent as null.
type PlaceOrderItem struct {
	MenuItemID int   `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
	SizeID     *int  `json:"sizeId,omitempty"`
	OptionIDs  []int `json:"optionIds,omitempty"`
}

// PlaceOrderRequest is the order-placement payload. Built once, sent once,
// never mutated after the request is issued.
type PlaceOrderRequest struct {
	TruckID       int              `json:"truckId"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	PaymentToken  string           `json:"paymentToken"`
	Items         []PlaceOrderItem `json:"items"`
}

// OrderResult is the server's answer to a successful placement
type OrderResult struct {
	ID           int    `json:"id"`
	TrackingCode string `json:"trackingCode"`
}

// OrderItem is one purchased line as reported by order lookup. Price is
// the unit price; displays multiply by quantity.
type OrderItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the tracked view of a committed order, replaced wholesale on
// every poll.
type Order struct {
	ID            int         `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items"`
}
