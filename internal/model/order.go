package model

import "time"

// OrderStatusPending is the status of every freshly submitted order.
const OrderStatusPending = "pending"

// Customer holds the delivery contact of an order.
type Customer struct {
	Name    string  `json:"name" validate:"required,notblank,max=255"`
	Address string  `json:"address" validate:"required,notblank,max=1024"`
	Phone1  string  `json:"phone1" validate:"required,notblank,max=32"`
	Phone2  *string `json:"phone2,omitempty" validate:"omitempty,max=32"`
}

// OrderItem is a line item as persisted on an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Image     string `json:"image"`
}

// OrderPromo records the promo code applied to an order.
type OrderPromo struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discountPercentage"`
	DiscountAmount     Money  `json:"discountAmount"`
	OriginalTotal      Money  `json:"originalTotal"`
	FinalTotal         Money  `json:"finalTotal"`
}

// Order is a finalized checkout.
type Order struct {
	ID           string      `json:"id"`
	Items        []OrderItem `json:"items"`
	Subtotal     Money       `json:"subtotal"`
	ShippingCost Money       `json:"shippingCost"`
	Total        Money       `json:"total"`
	Governorate  Region      `json:"governorate"`
	PromoCode    *OrderPromo `json:"promoCode,omitempty"`
	Customer     Customer    `json:"customer"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// SubmitOrderRequest is the DTO for POST /api/checkout.
type SubmitOrderRequest struct {
	Customer Customer `json:"customer"`
}
