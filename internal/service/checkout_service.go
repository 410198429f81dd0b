package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/cart"
	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/pricing"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

// Order listing bounds.
const (
	DefaultOrderListLimit = 100
	MaxOrderListLimit     = 100
)

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Insert(ctx context.Context, order *model.Order) error
	List(ctx context.Context, limit int) ([]model.Order, error)
}

// PromoApplier records a use of a promo code.
type PromoApplier interface {
	Apply(ctx context.Context, id string) error
}

// CheckoutService turns a session's cart into a persisted order.
type CheckoutService struct {
	orders   OrderRepositoryInterface
	sessions cart.SessionStore
	promos   PromoApplier
	regions  *region.Table
	now      func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orders OrderRepositoryInterface, sessions cart.SessionStore, promos PromoApplier, regions *region.Table) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		sessions: sessions,
		promos:   promos,
		regions:  regions,
		now:      time.Now,
	}
}

// SubmitOrder persists an order built from the session's cart.
// On success the promo code use is recorded (best effort) and the cart is cleared.
// On failure the cart is left untouched.
// Returns:
//   - ErrEmptyCart if the cart has no items
//   - ErrRegionRequired if no delivery region is selected
//   - *ValidationError for incomplete customer details
func (s *CheckoutService) SubmitOrder(ctx context.Context, sessionID string, customer model.Customer) (*model.Order, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(state.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if state.Region == nil {
		return nil, ErrRegionRequired
	}
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}

	order := s.buildOrder(state, customer)
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if order.PromoCode != nil {
		if err := s.promos.Apply(ctx, order.PromoCode.ID); err != nil {
			log.Warn().
				Err(err).
				Str("order_id", order.ID).
				Str("promo_code", order.PromoCode.Code).
				Msg("failed to record promo code usage")
		}
	}

	if err := s.sessions.Save(ctx, sessionID, cart.Reduce(state, cart.Clear{})); err != nil {
		log.Warn().
			Err(err).
			Str("order_id", order.ID).
			Str("session_id", sessionID).
			Msg("failed to clear cart after order")
	}

	log.Info().
		Str("order_id", order.ID).
		Int64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order submitted")

	return order, nil
}

// ListOrders returns the most recent orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = DefaultOrderListLimit
	}
	if limit > MaxOrderListLimit {
		limit = MaxOrderListLimit
	}
	orders, err := s.orders.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *CheckoutService) buildOrder(state model.CartState, customer model.Customer) *model.Order {
	summary := pricing.Compute(state, s.regions)

	items := make([]model.OrderItem, 0, len(state.Items))
	for _, it := range state.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			Image:     it.Image,
		})
	}

	order := &model.Order{
		ID:           uuid.NewString(),
		Items:        items,
		Subtotal:     summary.Subtotal,
		ShippingCost: summary.Shipping.Cost,
		Total:        summary.GrandTotal,
		Governorate:  *state.Region,
		Customer:     customer,
		Status:       model.OrderStatusPending,
		CreatedAt:    s.now().UTC(),
	}
	if state.AppliedPromo != nil {
		order.PromoCode = &model.OrderPromo{
			ID:                 state.AppliedPromo.ID,
			Code:               state.AppliedPromo.Code,
			DiscountPercentage: state.AppliedPromo.DiscountPercentage,
			DiscountAmount:     summary.DiscountAmount,
			OriginalTotal:      summary.Subtotal + summary.Shipping.Cost,
			FinalTotal:         summary.GrandTotal,
		}
	}
	return order
}

func validateCustomer(c *model.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Phone1 = strings.TrimSpace(c.Phone1)
	if c.Name == "" {
		return invalid("name", "name is required")
	}
	if c.Address == "" {
		return invalid("address", "address is required")
	}
	if c.Phone1 == "" {
		return invalid("phone1", "phone1 is required")
	}
	if c.Phone2 != nil {
		phone2 := strings.TrimSpace(*c.Phone2)
		if phone2 == "" {
			c.Phone2 = nil
			return nil
		}
		if phone2 == c.Phone1 {
			return invalid("phone2", "second phone number must be different from the first")
		}
		c.Phone2 = &phone2
	}
	return nil
}
