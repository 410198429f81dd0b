package cart

import "github.com/fairyhunter13/storefront-checkout/internal/model"

// Reduce returns the state that results from applying cmd to state.
// The input state is never modified.
func Reduce(state model.CartState, cmd Command) model.CartState {
	next := clone(state)

	switch c := cmd.(type) {
	case AddItem:
		key := model.LineKey{ProductID: c.Product.ID, Size: c.Size, Color: c.Color}
		if i := indexOf(next.Items, key); i >= 0 {
			next.Items[i].Quantity += c.Quantity
			return next
		}
		next.Items = append(next.Items, model.LineItem{
			LineKey:   key,
			Name:      c.Product.Name,
			UnitPrice: c.Product.Price,
			Image:     c.Product.PrimaryImage(),
			Quantity:  c.Quantity,
		})
	case RemoveItem:
		next.Items = without(next.Items, c.Key)
	case UpdateQuantity:
		if c.Quantity <= 0 {
			next.Items = without(next.Items, c.Key)
			return next
		}
		if i := indexOf(next.Items, c.Key); i >= 0 {
			next.Items[i].Quantity = c.Quantity
		}
	case SetRegion:
		r := c.Region
		next.Region = &r
	case ApplyPromo:
		p := c.Promo
		next.AppliedPromo = &p
	case RemovePromo:
		next.AppliedPromo = nil
	case Clear:
		return model.CartState{Items: []model.LineItem{}}
	}
	return next
}

func clone(state model.CartState) model.CartState {
	next := model.CartState{Items: make([]model.LineItem, len(state.Items))}
	copy(next.Items, state.Items)
	if state.Region != nil {
		r := *state.Region
		next.Region = &r
	}
	if state.AppliedPromo != nil {
		p := *state.AppliedPromo
		next.AppliedPromo = &p
	}
	return next
}

func indexOf(items []model.LineItem, key model.LineKey) int {
	for i, item := range items {
		if item.LineKey == key {
			return i
		}
	}
	return -1
}

func without(items []model.LineItem, key model.LineKey) []model.LineItem {
	out := items[:0]
	for _, item := range items {
		if item.LineKey != key {
			out = append(out, item)
		}
	}
	return out
}
