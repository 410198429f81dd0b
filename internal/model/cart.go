package model

// Money is an amount in whole currency units (EGP).
type Money = int64

// Tier classifies a region into a shipping bracket.
type Tier string

const (
	TierDeltaNorth     Tier = "delta_north"
	TierUpperEgypt     Tier = "upper_egypt"
	TierCanalException Tier = "canal_exception"
)

// Region is an entry of the fixed delivery region catalog.
type Region struct {
	Name       string `json:"name"`
	ArabicName string `json:"arabicName"`
	Price      Money  `json:"price"`
	Tier       Tier   `json:"tier"`
}

// LineKey identifies a line item in a cart.
type LineKey struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// LineItem is one (product, size, color) selection with its own quantity.
// Name, UnitPrice and Image are captured when the line is created and never refreshed.
type LineItem struct {
	LineKey
	Name      string `json:"name"`
	UnitPrice Money  `json:"unitPrice"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// Total returns UnitPrice * Quantity.
func (l LineItem) Total() Money {
	return l.UnitPrice * Money(l.Quantity)
}

// AppliedPromoCode is a snapshot of a validated promo code held by a cart.
// DiscountAmount reflects the subtotal at application time only.
type AppliedPromoCode struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discountPercentage"`
	DiscountAmount     Money  `json:"discountAmount"`
}

// CartState is the full state of one shopper's cart.
type CartState struct {
	Items        []LineItem        `json:"items"`
	Region       *Region           `json:"region,omitempty"`
	AppliedPromo *AppliedPromoCode `json:"appliedPromo,omitempty"`
}

// ShippingInfo describes the shipping charge of a cart.
type ShippingInfo struct {
	Cost    Money  `json:"cost"`
	Free    bool   `json:"free"`
	Message string `json:"message"`
}

// Summary holds every order-level monetary figure derived from a cart.
type Summary struct {
	TotalItems           int          `json:"totalItems"`
	Subtotal             Money        `json:"subtotal"`
	DiscountPercentage   int          `json:"discountPercentage"`
	DiscountAmount       Money        `json:"discountAmount"`
	TotalAfterDiscount   Money        `json:"totalAfterDiscount"`
	Shipping             ShippingInfo `json:"shipping"`
	AmountToFreeShipping Money        `json:"amountToFreeShipping"`
	GrandTotal           Money        `json:"grandTotal"`
}

// CartView is the API response for cart operations.
type CartView struct {
	SessionID string    `json:"sessionId"`
	Cart      CartState `json:"cart"`
	Summary   Summary   `json:"summary"`
}

// AddItemRequest is the DTO for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,notblank,max=255"`
	Size      string `json:"size" validate:"max=64"`
	Color     string `json:"color" validate:"max=64"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// LineItemRequest addresses an existing line item, optionally with a new quantity.
type LineItemRequest struct {
	ProductID string `json:"productId" validate:"required,notblank,max=255"`
	Size      string `json:"size" validate:"max=64"`
	Color     string `json:"color" validate:"max=64"`
	Quantity  int    `json:"quantity"`
}

// Key returns the line key addressed by the request.
func (r LineItemRequest) Key() LineKey {
	return LineKey{ProductID: r.ProductID, Size: r.Size, Color: r.Color}
}

// SetRegionRequest is the DTO for selecting a delivery region.
type SetRegionRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}
