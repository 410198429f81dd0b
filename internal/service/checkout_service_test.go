package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/storefront-checkout/internal/cart"
	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
)

// mockOrderRepository is a mock implementation of OrderRepositoryInterface.
type mockOrderRepository struct {
	insertFn func(ctx context.Context, order *model.Order) error
	listFn   func(ctx context.Context, limit int) ([]model.Order, error)
}

func (m *mockOrderRepository) Insert(ctx context.Context, order *model.Order) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, order)
	}
	return nil
}

func (m *mockOrderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return []model.Order{}, nil
}

// mockPromoApplier is a mock implementation of PromoApplier.
type mockPromoApplier struct {
	applyFn func(ctx context.Context, id string) error
	calls   int
}

func (m *mockPromoApplier) Apply(ctx context.Context, id string) error {
	m.calls++
	if m.applyFn != nil {
		return m.applyFn(ctx, id)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func validCustomer() model.Customer {
	return model.Customer{
		Name:    " Mona Adel ",
		Address: "12 Nile St, Zamalek",
		Phone1:  "01001234567",
	}
}

// seededCart stores a 2 x 500 cart with the given region and promo for session s1.
func seededCart(t *testing.T, regionName string, promo *model.AppliedPromoCode) *cart.MemorySessionStore {
	t.Helper()
	sessions := cart.NewMemorySessionStore()
	store := cart.NewStore(model.CartState{})
	store.AddItem(*catalogProduct(), "M", "white", 2)
	if regionName != "" {
		r, err := region.NewTable().Lookup(regionName)
		require.NoError(t, err)
		store.SetRegion(r)
	}
	if promo != nil {
		store.ApplyPromoCode(*promo)
	}
	require.NoError(t, sessions.Save(context.Background(), "s1", store.State()))
	return sessions
}

func newTestCheckoutService(orders OrderRepositoryInterface, sessions cart.SessionStore, promos PromoApplier) *CheckoutService {
	svc := NewCheckoutService(orders, sessions, promos, region.NewTable())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCheckoutService_SubmitOrder_Success(t *testing.T) {
	sessions := seededCart(t, "Suez", nil)
	var inserted *model.Order
	orders := &mockOrderRepository{
		insertFn: func(ctx context.Context, order *model.Order) error {
			inserted = order
			return nil
		},
	}
	promos := &mockPromoApplier{}
	svc := newTestCheckoutService(orders, sessions, promos)

	order, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Same(t, inserted, order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, fixedNow, order.CreatedAt)
	assert.Equal(t, model.Money(1000), order.Subtotal)
	assert.Equal(t, model.Money(50), order.ShippingCost)
	assert.Equal(t, model.Money(1050), order.Total)
	assert.Equal(t, "Suez", order.Governorate.Name)
	assert.Nil(t, order.PromoCode)
	assert.Equal(t, "Mona Adel", order.Customer.Name, "customer fields are trimmed")
	require.Len(t, order.Items, 1)
	assert.Equal(t, model.OrderItem{
		ProductID: "p-1",
		Name:      "Linen Shirt",
		Price:     500,
		Quantity:  2,
		Size:      "M",
		Color:     "white",
		Image:     "shirt.jpg",
	}, order.Items[0])
	assert.Equal(t, 0, promos.calls)

	state, err := sessions.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, state.Items, "cart is cleared after a successful order")
	assert.Nil(t, state.Region)
}

func TestCheckoutService_SubmitOrder_WithPromo(t *testing.T) {
	sessions := seededCart(t, "Cairo", &model.AppliedPromoCode{
		ID:                 "promo-1",
		Code:               "SAVE20",
		DiscountPercentage: 20,
		DiscountAmount:     200,
	})
	var appliedID string
	promos := &mockPromoApplier{
		applyFn: func(ctx context.Context, id string) error {
			appliedID = id
			return nil
		},
	}
	svc := newTestCheckoutService(&mockOrderRepository{}, sessions, promos)

	order, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

	require.NoError(t, err)
	assert.Equal(t, "promo-1", appliedID)
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "SAVE20", order.PromoCode.Code)
	assert.Equal(t, 20, order.PromoCode.DiscountPercentage)
	assert.Equal(t, model.Money(200), order.PromoCode.DiscountAmount)
	assert.Equal(t, model.Money(1070), order.PromoCode.OriginalTotal)
	assert.Equal(t, model.Money(870), order.PromoCode.FinalTotal)
	assert.Equal(t, model.Money(870), order.Total)
	assert.Equal(t, model.Money(70), order.ShippingCost)
}

func TestCheckoutService_SubmitOrder_PromoApplyFailureIsSwallowed(t *testing.T) {
	sessions := seededCart(t, "Cairo", &model.AppliedPromoCode{ID: "promo-1", Code: "SAVE20", DiscountPercentage: 20})
	promos := &mockPromoApplier{
		applyFn: func(ctx context.Context, id string) error {
			return ErrUsageLimitReached
		},
	}
	svc := newTestCheckoutService(&mockOrderRepository{}, sessions, promos)

	order, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

	require.NoError(t, err, "the order stands even if recording promo usage fails")
	assert.NotNil(t, order.PromoCode)
	assert.Equal(t, 1, promos.calls)
	state, _ := sessions.Load(context.Background(), "s1")
	assert.Empty(t, state.Items)
}

func TestCheckoutService_SubmitOrder_InsertFailureKeepsCart(t *testing.T) {
	sessions := seededCart(t, "Cairo", &model.AppliedPromoCode{ID: "promo-1", Code: "SAVE20", DiscountPercentage: 20})
	orders := &mockOrderRepository{
		insertFn: func(ctx context.Context, order *model.Order) error {
			return errors.New("disk full")
		},
	}
	promos := &mockPromoApplier{}
	svc := newTestCheckoutService(orders, sessions, promos)

	order, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "insert order")
	assert.Equal(t, 0, promos.calls, "usage is only recorded for persisted orders")
	state, _ := sessions.Load(context.Background(), "s1")
	assert.Len(t, state.Items, 1)
	assert.NotNil(t, state.AppliedPromo)
}

func TestCheckoutService_SubmitOrder_Preconditions(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		svc := newTestCheckoutService(&mockOrderRepository{}, cart.NewMemorySessionStore(), &mockPromoApplier{})

		_, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

		assert.True(t, errors.Is(err, ErrEmptyCart))
	})

	t.Run("no region", func(t *testing.T) {
		svc := newTestCheckoutService(&mockOrderRepository{}, seededCart(t, "", nil), &mockPromoApplier{})

		_, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

		assert.True(t, errors.Is(err, ErrRegionRequired))
	})
}

func TestCheckoutService_SubmitOrder_CustomerValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *model.Customer)
		field string
	}{
		{"missing name", func(c *model.Customer) { c.Name = "  " }, "name"},
		{"missing address", func(c *model.Customer) { c.Address = "" }, "address"},
		{"missing phone", func(c *model.Customer) { c.Phone1 = "" }, "phone1"},
		{"duplicate second phone", func(c *model.Customer) { c.Phone2 = strPtr(" 01001234567 ") }, "phone2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insertCalled := false
			orders := &mockOrderRepository{
				insertFn: func(ctx context.Context, order *model.Order) error {
					insertCalled = true
					return nil
				},
			}
			svc := newTestCheckoutService(orders, seededCart(t, "Cairo", nil), &mockPromoApplier{})
			customer := validCustomer()
			tt.edit(&customer)

			_, err := svc.SubmitOrder(context.Background(), "s1", customer)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.False(t, insertCalled)
		})
	}
}

func TestCheckoutService_SubmitOrder_SecondPhone(t *testing.T) {
	svc := newTestCheckoutService(&mockOrderRepository{}, seededCart(t, "Cairo", nil), &mockPromoApplier{})
	customer := validCustomer()
	customer.Phone2 = strPtr(" 01119876543 ")

	order, err := svc.SubmitOrder(context.Background(), "s1", customer)

	require.NoError(t, err)
	require.NotNil(t, order.Customer.Phone2)
	assert.Equal(t, "01119876543", *order.Customer.Phone2)
}

func TestCheckoutService_SubmitOrder_BlankSecondPhoneDropped(t *testing.T) {
	svc := newTestCheckoutService(&mockOrderRepository{}, seededCart(t, "Cairo", nil), &mockPromoApplier{})
	customer := validCustomer()
	customer.Phone2 = strPtr("   ")

	order, err := svc.SubmitOrder(context.Background(), "s1", customer)

	require.NoError(t, err)
	assert.Nil(t, order.Customer.Phone2)
}

func TestCheckoutService_SubmitOrder_FreeShipping(t *testing.T) {
	sessions := cart.NewMemorySessionStore()
	store := cart.NewStore(model.CartState{})
	store.AddItem(*catalogProduct(), "M", "white", 6)
	r, err := region.NewTable().Lookup("Aswan")
	require.NoError(t, err)
	store.SetRegion(r)
	require.NoError(t, sessions.Save(context.Background(), "s1", store.State()))
	svc := newTestCheckoutService(&mockOrderRepository{}, sessions, &mockPromoApplier{})

	order, err := svc.SubmitOrder(context.Background(), "s1", validCustomer())

	require.NoError(t, err)
	assert.Equal(t, model.Money(0), order.ShippingCost)
	assert.Equal(t, model.Money(3000), order.Total)
}

func TestCheckoutService_ListOrders_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		in    int
		limit int
	}{
		{"default", 0, DefaultOrderListLimit},
		{"negative", -5, DefaultOrderListLimit},
		{"within", 10, 10},
		{"above max", 1000, MaxOrderListLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			orders := &mockOrderRepository{
				listFn: func(ctx context.Context, limit int) ([]model.Order, error) {
					got = limit
					return []model.Order{}, nil
				},
			}
			svc := newTestCheckoutService(orders, cart.NewMemorySessionStore(), &mockPromoApplier{})

			_, err := svc.ListOrders(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.limit, got)
		})
	}
}

func TestCheckoutService_ListOrders_RepoError(t *testing.T) {
	orders := &mockOrderRepository{
		listFn: func(ctx context.Context, limit int) ([]model.Order, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newTestCheckoutService(orders, cart.NewMemorySessionStore(), &mockPromoApplier{})

	_, err := svc.ListOrders(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list orders")
}
