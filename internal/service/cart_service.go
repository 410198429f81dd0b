package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairyhunter13/storefront-checkout/internal/cart"
	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/pricing"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

// ProductRepositoryInterface defines read access to the product catalog.
// GetByID returns nil, nil when the product does not exist.
type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// PromoValidator validates promo codes for a cart.
type PromoValidator interface {
	Validate(ctx context.Context, code string) *model.ValidationResult
}

// CartService runs cart operations against the cart stored for a session.
type CartService struct {
	sessions cart.SessionStore
	products ProductRepositoryInterface
	promos   PromoValidator
	regions  *region.Table
}

// NewCartService creates a new CartService.
func NewCartService(sessions cart.SessionStore, products ProductRepositoryInterface, promos PromoValidator, regions *region.Table) *CartService {
	return &CartService{
		sessions: sessions,
		products: products,
		promos:   promos,
		regions:  regions,
	}
}

// Regions returns the delivery region catalog.
func (s *CartService) Regions() []model.Region {
	return s.regions.All()
}

// Get returns the cart of a session with freshly computed totals.
func (s *CartService) Get(ctx context.Context, sessionID string) (*model.CartView, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

// AddItem adds a catalog product to the cart.
// Returns ErrProductNotFound, ErrProductSoldOut, or a *ValidationError when the size
// or color is missing or not offered.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *model.AddItemRequest) (*model.CartView, error) {
	if req == nil || strings.TrimSpace(req.ProductID) == "" {
		return nil, ErrInvalidRequest
	}
	if req.Quantity < 0 {
		return nil, invalid("quantity", "quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil || !product.Active {
		return nil, ErrProductNotFound
	}
	if product.SoldOut {
		return nil, ErrProductSoldOut
	}
	if len(product.Sizes) > 0 && !product.OffersSize(req.Size) {
		if req.Size == "" {
			return nil, invalid("size", "please select a size")
		}
		return nil, invalid("size", "size "+req.Size+" is not available")
	}
	if len(product.Colors) > 0 && !product.OffersColor(req.Color) {
		if req.Color == "" {
			return nil, invalid("color", "please select a color")
		}
		return nil, invalid("color", "color "+req.Color+" is not available")
	}

	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.AddItem(*product, req.Size, req.Color, req.Quantity)
	})
}

// RemoveItem removes a line from the cart. Removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, key model.LineKey) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.RemoveItem(key.ProductID, key.Size, key.Color)
	})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, key model.LineKey, quantity int) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.UpdateQuantity(key.ProductID, key.Size, key.Color, quantity)
	})
}

// SetRegion selects the delivery region by name.
// Returns region.ErrUnknownRegion for names outside the catalog.
func (s *CartService) SetRegion(ctx context.Context, sessionID, name string) (*model.CartView, error) {
	r, err := s.regions.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.SetRegion(r)
	})
}

// ApplyPromoCode validates code and, when valid, attaches it to the cart.
// A rejected code leaves the cart unchanged; the returned result carries the reason.
func (s *CartService) ApplyPromoCode(ctx context.Context, sessionID, code string) (*model.CartView, *model.ValidationResult, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	result := s.promos.Validate(ctx, code)
	if !result.Valid {
		return s.view(sessionID, store), result, nil
	}

	subtotal := pricing.Subtotal(store.Items())
	store.ApplyPromoCode(model.AppliedPromoCode{
		ID:                 result.PromoCode.ID,
		Code:               result.PromoCode.Code,
		DiscountPercentage: result.DiscountPercentage,
		DiscountAmount:     pricing.DiscountAmount(subtotal, result.DiscountPercentage),
	})
	if err := s.sessions.Save(ctx, sessionID, store.State()); err != nil {
		return nil, nil, fmt.Errorf("save cart: %w", err)
	}
	return s.view(sessionID, store), result, nil
}

// RemovePromoCode detaches the applied promo code.
func (s *CartService) RemovePromoCode(ctx context.Context, sessionID string) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.RemovePromoCode()
	})
}

// Clear empties the cart and resets region and promo code.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) {
		store.Clear()
	})
}

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Store, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart.NewStore(state), nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, op func(store *cart.Store)) (*model.CartView, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	op(store)
	if err := s.sessions.Save(ctx, sessionID, store.State()); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.view(sessionID, store), nil
}

func (s *CartService) view(sessionID string, store *cart.Store) *model.CartView {
	return &model.CartView{
		SessionID: sessionID,
		Cart:      store.State(),
		Summary:   store.Summary(s.regions),
	}
}
