package model

import "time"

// PromoStatus is the derived state of a promo code. It is never stored.
type PromoStatus string

const (
	PromoStatusActive   PromoStatus = "ACTIVE"
	PromoStatusInactive PromoStatus = "INACTIVE"
	PromoStatusExpired  PromoStatus = "EXPIRED"
	PromoStatusUsedUp   PromoStatus = "USED_UP"
)

// PromoCode represents an admin-issued percentage discount code.
type PromoCode struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	UsageLimit         int       `json:"usageLimit"`
	UsedCount          int       `json:"usedCount"`
	IsActive           bool      `json:"isActive"`
	CreatedBy          string    `json:"createdBy"`
	CreatedAt          time.Time `json:"createdAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// StatusAt computes the status of the code at the given instant.
// Precedence: inactive, expired, used up, active.
func (p *PromoCode) StatusAt(now time.Time) PromoStatus {
	if !p.IsActive {
		return PromoStatusInactive
	}
	if now.After(p.ExpiresAt) {
		return PromoStatusExpired
	}
	if p.UsedCount >= p.UsageLimit {
		return PromoStatusUsedUp
	}
	return PromoStatusActive
}

// PromoCodeResponse is the admin API view of a promo code.
type PromoCodeResponse struct {
	PromoCode
	Status PromoStatus `json:"status"`
}

// CreatePromoCodeRequest is the DTO for creating a promo code.
type CreatePromoCodeRequest struct {
	Code               string `json:"code" validate:"required,notblank,max=64"`
	DiscountPercentage *int   `json:"discountPercentage" validate:"required,gte=5,lte=70"`
	UsageLimit         *int   `json:"usageLimit" validate:"required,gte=1"`
	ValidityDays       *int   `json:"validityDays" validate:"required,gte=1"`
	CreatedBy          string `json:"createdBy" validate:"max=255"`
}

// ValidatePromoCodeRequest is the DTO for validating or applying a code to a cart.
type ValidatePromoCodeRequest struct {
	Code string `json:"code" validate:"max=64"`
}

// ValidationReason tags a promo code validation outcome.
type ValidationReason string

const (
	ReasonValid             ValidationReason = "VALID"
	ReasonEmptyCode         ValidationReason = "EMPTY_CODE"
	ReasonNotFound          ValidationReason = "NOT_FOUND"
	ReasonInactive          ValidationReason = "INACTIVE"
	ReasonExpired           ValidationReason = "EXPIRED"
	ReasonUsageLimitReached ValidationReason = "USAGE_LIMIT_REACHED"
	ReasonValidationError   ValidationReason = "VALIDATION_ERROR"
)

var reasonMessages = map[ValidationReason]string{
	ReasonValid:             "Promo code applied",
	ReasonEmptyCode:         "Please enter a promo code",
	ReasonNotFound:          "Invalid promo code",
	ReasonInactive:          "Promo code is no longer active",
	ReasonExpired:           "Promo code has expired",
	ReasonUsageLimitReached: "Promo code usage limit reached",
	ReasonValidationError:   "Error validating promo code. Please try again.",
}

// Message returns the user-facing text for the reason.
func (r ValidationReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "Invalid promo code"
}

// ValidationResult is the outcome of validating a promo code.
// PromoCode and DiscountPercentage are only set when Valid is true.
type ValidationResult struct {
	Valid              bool             `json:"valid"`
	Reason             ValidationReason `json:"reason"`
	Message            string           `json:"message"`
	DiscountPercentage int              `json:"discountPercentage,omitempty"`
	PromoCode          *PromoCode       `json:"-"`
}

// NewRejection builds a failed ValidationResult for the given reason.
func NewRejection(reason ValidationReason) *ValidationResult {
	return &ValidationResult{Reason: reason, Message: reason.Message()}
}
