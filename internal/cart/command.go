// Package cart implements the cart ledger: a tagged command set, a pure state
// transition over model.CartState, and the session stores carts live in between requests.
package cart

import "github.com/fairyhunter13/storefront-checkout/internal/model"

// Command is one cart mutation. The set is closed.
type Command interface {
	isCommand()
}

// AddItem adds Quantity units of a product variant, merging into an existing line.
type AddItem struct {
	Product  model.Product
	Size     string
	Color    string
	Quantity int
}

// RemoveItem deletes the line with Key if present.
type RemoveItem struct {
	Key model.LineKey
}

// UpdateQuantity replaces the quantity of the line with Key. Quantity <= 0 removes it.
type UpdateQuantity struct {
	Key      model.LineKey
	Quantity int
}

// SetRegion selects the delivery region.
type SetRegion struct {
	Region model.Region
}

// ApplyPromo stores a validated promo code snapshot.
type ApplyPromo struct {
	Promo model.AppliedPromoCode
}

// RemovePromo unsets the applied promo code.
type RemovePromo struct{}

// Clear empties the cart and unsets region and promo code.
type Clear struct{}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (SetRegion) isCommand()      {}
func (ApplyPromo) isCommand()     {}
func (RemovePromo) isCommand()    {}
func (Clear) isCommand()          {}
