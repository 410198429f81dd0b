// Package pricing derives every order-level monetary figure from a cart.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

// FreeShippingThreshold is the total after discount from which shipping is free.
const FreeShippingThreshold model.Money = 3000

const freeShippingMessage = "Free shipping on orders of 3000 EGP or more"

var hundred = decimal.NewFromInt(100)

// DiscountAmount returns subtotal * percentage / 100 rounded half away from zero.
func DiscountAmount(subtotal model.Money, percentage int) model.Money {
	if subtotal == 0 || percentage == 0 {
		return 0
	}
	amount := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(int64(percentage))).
		Div(hundred).
		Round(0)
	return amount.IntPart()
}

// Subtotal sums unit price times quantity over the items.
func Subtotal(items []model.LineItem) model.Money {
	var total model.Money
	for _, item := range items {
		total += item.Total()
	}
	return total
}

// TotalItems sums the quantities of the items.
func TotalItems(items []model.LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Shipping computes the shipping charge for a total after discount and a selected region.
// A region the table does not know costs nothing.
func Shipping(totalAfterDiscount model.Money, selected *model.Region, table *region.Table) model.ShippingInfo {
	if totalAfterDiscount >= FreeShippingThreshold {
		return model.ShippingInfo{Cost: 0, Free: true, Message: freeShippingMessage}
	}
	if selected == nil {
		return model.ShippingInfo{}
	}
	r, err := table.Lookup(selected.Name)
	if err != nil {
		return model.ShippingInfo{}
	}
	return model.ShippingInfo{Cost: r.Price, Message: shippingMessage(r)}
}

func shippingMessage(r model.Region) string {
	switch r.Tier {
	case model.TierCanalException:
		return fmt.Sprintf("Delivery fee: %d EGP (%s)", r.Price, r.Name)
	case model.TierDeltaNorth:
		return fmt.Sprintf("Delivery fee: %d EGP (Delta and North governorates)", r.Price)
	case model.TierUpperEgypt:
		return fmt.Sprintf("Delivery fee: %d EGP (Upper Egypt governorates)", r.Price)
	default:
		return fmt.Sprintf("Delivery fee: %d EGP", r.Price)
	}
}

// Compute derives the Summary of a cart. The discount is always taken against the
// current subtotal, never the amount captured when the code was applied.
func Compute(state model.CartState, table *region.Table) model.Summary {
	s := model.Summary{
		TotalItems: TotalItems(state.Items),
		Subtotal:   Subtotal(state.Items),
	}
	if state.AppliedPromo != nil {
		s.DiscountPercentage = state.AppliedPromo.DiscountPercentage
		s.DiscountAmount = DiscountAmount(s.Subtotal, s.DiscountPercentage)
	}
	s.TotalAfterDiscount = s.Subtotal - s.DiscountAmount
	s.Shipping = Shipping(s.TotalAfterDiscount, state.Region, table)
	if !s.Shipping.Free {
		s.AmountToFreeShipping = FreeShippingThreshold - s.TotalAfterDiscount
	}
	s.GrandTotal = s.TotalAfterDiscount + s.Shipping.Cost
	return s
}
