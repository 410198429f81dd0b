package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

func line(id string, price model.Money, qty int) model.LineItem {
	return model.LineItem{
		LineKey:   model.LineKey{ProductID: id, Size: "M", Color: "black"},
		Name:      id,
		UnitPrice: price,
		Quantity:  qty,
	}
}

func regionNamed(t *testing.T, table *region.Table, name string) *model.Region {
	t.Helper()
	r, err := table.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return &r
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		subtotal   model.Money
		percentage int
		want       model.Money
	}{
		{1000, 20, 200},
		{333, 10, 33},
		{335, 10, 34}, // 33.5 rounds away from zero
		{999, 5, 50},  // 49.95
		{0, 50, 0},
		{1000, 0, 0},
		{3750, 70, 2625},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DiscountAmount(tt.subtotal, tt.percentage),
			"DiscountAmount(%d, %d)", tt.subtotal, tt.percentage)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	s := Compute(model.CartState{}, region.NewTable())

	assert.Equal(t, model.Money(0), s.Subtotal)
	assert.Equal(t, model.Money(0), s.Shipping.Cost)
	assert.False(t, s.Shipping.Free)
	assert.Empty(t, s.Shipping.Message)
	assert.Equal(t, model.Money(0), s.GrandTotal)
	assert.Equal(t, FreeShippingThreshold, s.AmountToFreeShipping)
}

func TestCompute_SuezNoPromo(t *testing.T) {
	table := region.NewTable()
	state := model.CartState{
		Items:  []model.LineItem{line("tee", 500, 2)},
		Region: regionNamed(t, table, "Suez"),
	}

	s := Compute(state, table)

	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, model.Money(1000), s.Subtotal)
	assert.Equal(t, model.Money(0), s.DiscountAmount)
	assert.Equal(t, model.Money(1000), s.TotalAfterDiscount)
	assert.Equal(t, model.Money(50), s.Shipping.Cost)
	assert.Equal(t, "Delivery fee: 50 EGP (Suez)", s.Shipping.Message)
	assert.Equal(t, model.Money(1050), s.GrandTotal)
	assert.Equal(t, model.Money(2000), s.AmountToFreeShipping)
}

func TestCompute_SuezWithPromo(t *testing.T) {
	table := region.NewTable()
	state := model.CartState{
		Items:        []model.LineItem{line("tee", 500, 2)},
		Region:       regionNamed(t, table, "Suez"),
		AppliedPromo: &model.AppliedPromoCode{Code: "SAVE20", DiscountPercentage: 20, DiscountAmount: 200},
	}

	s := Compute(state, table)

	assert.Equal(t, model.Money(1000), s.Subtotal)
	assert.Equal(t, 20, s.DiscountPercentage)
	assert.Equal(t, model.Money(200), s.DiscountAmount)
	assert.Equal(t, model.Money(800), s.TotalAfterDiscount)
	assert.Equal(t, model.Money(50), s.Shipping.Cost)
	assert.Equal(t, model.Money(850), s.GrandTotal)
}

func TestCompute_DiscountFollowsCurrentSubtotal(t *testing.T) {
	table := region.NewTable()
	state := model.CartState{
		Items: []model.LineItem{line("tee", 500, 4)},
		// snapshot taken when the cart held a single tee
		AppliedPromo: &model.AppliedPromoCode{Code: "SAVE10", DiscountPercentage: 10, DiscountAmount: 50},
	}

	s := Compute(state, table)

	assert.Equal(t, model.Money(200), s.DiscountAmount)
	assert.Equal(t, model.Money(1800), s.GrandTotal)
}

func TestCompute_FreeShippingThreshold(t *testing.T) {
	table := region.NewTable()

	for _, name := range []string{"Cairo", "Suez", "Aswan"} {
		state := model.CartState{
			Items:  []model.LineItem{line("jacket", 1600, 2)},
			Region: regionNamed(t, table, name),
		}

		s := Compute(state, table)

		assert.Equal(t, model.Money(3200), s.Subtotal, name)
		assert.Equal(t, model.Money(0), s.Shipping.Cost, name)
		assert.True(t, s.Shipping.Free, name)
		assert.Equal(t, model.Money(3200), s.GrandTotal, name)
		assert.Equal(t, model.Money(0), s.AmountToFreeShipping, name)
	}
}

func TestCompute_ThresholdIsInclusiveAndAfterDiscount(t *testing.T) {
	table := region.NewTable()
	cairo := regionNamed(t, table, "Cairo")

	exact := Compute(model.CartState{Items: []model.LineItem{line("a", 3000, 1)}, Region: cairo}, table)
	assert.True(t, exact.Shipping.Free)
	assert.Equal(t, model.Money(3000), exact.GrandTotal)

	discounted := Compute(model.CartState{
		Items:        []model.LineItem{line("a", 3200, 1)},
		Region:       cairo,
		AppliedPromo: &model.AppliedPromoCode{Code: "SAVE10", DiscountPercentage: 10},
	}, table)
	assert.Equal(t, model.Money(2880), discounted.TotalAfterDiscount)
	assert.False(t, discounted.Shipping.Free)
	assert.Equal(t, model.Money(70), discounted.Shipping.Cost)
	assert.Equal(t, model.Money(2950), discounted.GrandTotal)
}

func TestCompute_FreeShippingWithoutRegion(t *testing.T) {
	s := Compute(model.CartState{Items: []model.LineItem{line("a", 5000, 1)}}, region.NewTable())

	assert.True(t, s.Shipping.Free)
	assert.Equal(t, "Free shipping on orders of 3000 EGP or more", s.Shipping.Message)
}

func TestCompute_TierMessages(t *testing.T) {
	table := region.NewTable()
	items := []model.LineItem{line("a", 100, 1)}

	cairo := Compute(model.CartState{Items: items, Region: regionNamed(t, table, "Cairo")}, table)
	assert.Equal(t, model.Money(70), cairo.Shipping.Cost)
	assert.Equal(t, "Delivery fee: 70 EGP (Delta and North governorates)", cairo.Shipping.Message)

	luxor := Compute(model.CartState{Items: items, Region: regionNamed(t, table, "Luxor")}, table)
	assert.Equal(t, model.Money(120), luxor.Shipping.Cost)
	assert.Equal(t, "Delivery fee: 120 EGP (Upper Egypt governorates)", luxor.Shipping.Message)
}

func TestCompute_UnknownRegionCostsNothing(t *testing.T) {
	state := model.CartState{
		Items:  []model.LineItem{line("a", 100, 1)},
		Region: &model.Region{Name: "Atlantis", Price: 999},
	}

	s := Compute(state, region.NewTable())

	assert.Equal(t, model.Money(0), s.Shipping.Cost)
	assert.Equal(t, model.Money(100), s.GrandTotal)
}

func TestCompute_UsesTablePriceNotSnapshotPrice(t *testing.T) {
	state := model.CartState{
		Items:  []model.LineItem{line("a", 100, 1)},
		Region: &model.Region{Name: "Suez", Price: 1},
	}

	s := Compute(state, region.NewTable())

	assert.Equal(t, model.Money(50), s.Shipping.Cost)
}

func TestCompute_Idempotent(t *testing.T) {
	table := region.NewTable()
	state := model.CartState{
		Items:        []model.LineItem{line("a", 333, 1), line("b", 250, 3)},
		Region:       regionNamed(t, table, "Giza"),
		AppliedPromo: &model.AppliedPromoCode{Code: "SAVE15", DiscountPercentage: 15},
	}

	assert.Equal(t, Compute(state, table), Compute(state, table))
}
