package cart

import (
	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/pricing"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

// Store holds the cart of a single session and applies commands to it.
// It is not safe for concurrent use.
type Store struct {
	state model.CartState
}

// NewStore creates a Store starting from state.
func NewStore(state model.CartState) *Store {
	if state.Items == nil {
		state.Items = []model.LineItem{}
	}
	return &Store{state: state}
}

// Dispatch applies cmd and returns the new state.
func (s *Store) Dispatch(cmd Command) model.CartState {
	s.state = Reduce(s.state, cmd)
	return s.State()
}

// AddItem adds quantity units of product in the given size and color.
// A zero quantity adds one unit.
func (s *Store) AddItem(product model.Product, size, color string, quantity int) {
	if quantity == 0 {
		quantity = 1
	}
	s.Dispatch(AddItem{Product: product, Size: size, Color: color, Quantity: quantity})
}

// RemoveItem removes the line for (productID, size, color) if present.
func (s *Store) RemoveItem(productID, size, color string) {
	s.Dispatch(RemoveItem{Key: model.LineKey{ProductID: productID, Size: size, Color: color}})
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it.
func (s *Store) UpdateQuantity(productID, size, color string, quantity int) {
	s.Dispatch(UpdateQuantity{
		Key:      model.LineKey{ProductID: productID, Size: size, Color: color},
		Quantity: quantity,
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.Dispatch(Clear{})
}

// SetRegion selects the delivery region.
func (s *Store) SetRegion(r model.Region) {
	s.Dispatch(SetRegion{Region: r})
}

// ApplyPromoCode stores a promo code snapshot.
func (s *Store) ApplyPromoCode(p model.AppliedPromoCode) {
	s.Dispatch(ApplyPromo{Promo: p})
}

// RemovePromoCode unsets the applied promo code.
func (s *Store) RemovePromoCode() {
	s.Dispatch(RemovePromo{})
}

// State returns a copy of the current state.
func (s *Store) State() model.CartState {
	return clone(s.state)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.LineItem {
	return clone(s.state).Items
}

// TotalItems returns the number of units in the cart.
func (s *Store) TotalItems() int {
	return pricing.TotalItems(s.state.Items)
}

// Summary computes the current totals.
func (s *Store) Summary(table *region.Table) model.Summary {
	return pricing.Compute(s.state, table)
}
