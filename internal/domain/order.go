package domain

import "time"

// Known delivery statuses. The field is an open set; other values are stored as-is.
const (
	StatusOnWarehouse = "On warehouse"
	StatusAtDelivery  = "At delivery"
	StatusDelivered   = "Delivered"
)

// Order tracks a single shipment from warehouse to destination.
type Order struct {
	ID                 int64     `json:"id"`
	DestinationAddress string    `json:"destinationAddress"`
	Weight             float64   `json:"weight"`
	DeliveryStatus     string    `json:"deliveryStatus"`
	StatusMessage      string    `json:"statusMessage,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
