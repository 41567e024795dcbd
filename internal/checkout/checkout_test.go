package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

func setupFlow(t *testing.T) (*Flow, *cart.Cart) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := domain.Product{ID: "p1", Name: "Garam Masala", Price: 500, Stock: 10}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}
	c := cart.New("u1", repository.NewMemoryCarts(store), store)
	orders := service.NewOrderService(store, repository.NewMemoryOrders(store), repository.NewMemoryTx(store))
	return NewFlow("u1", c, orders), c
}

func validAddress() domain.Address {
	return domain.Address{Street: "1 Main St", City: "Mumbai", State: "MH", ZipCode: "400001", Country: "IN"}
}

func TestFlow_CouponMath(t *testing.T) {
	ctx := context.Background()
	f, c := setupFlow(t)
	if err := c.Add(ctx, "p1", 1, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := f.ApplyCoupon("save10"); err != nil {
		t.Fatalf("apply err: %v", err)
	}
	if got := f.Subtotal().IntPart(); got != 500 {
		t.Fatalf("subtotal: want 500, got %d", got)
	}
	if got := f.Discount().StringFixed(2); got != "50.00" {
		t.Fatalf("discount: want 50.00, got %s", got)
	}
	if got := f.FinalTotal().StringFixed(2); got != "450.00" {
		t.Fatalf("final: want 450.00, got %s", got)
	}

	f.RemoveCoupon()
	if f.AppliedCoupon() != nil {
		t.Fatalf("coupon not removed")
	}
	if got := f.FinalTotal().IntPart(); got != 500 {
		t.Fatalf("final without coupon: want 500, got %d", got)
	}
}

func TestFlow_InvalidCouponLeavesTotals(t *testing.T) {
	ctx := context.Background()
	f, c := setupFlow(t)
	if err := c.Add(ctx, "p1", 1, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := f.ApplyCoupon("NOPE"); !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon, got %v", err)
	}
	if f.AppliedCoupon() != nil {
		t.Fatalf("invalid code must not stick")
	}
	if got := f.FinalTotal().IntPart(); got != 500 {
		t.Fatalf("totals must be untouched: got %d", got)
	}
}

func TestLookupCoupon_CaseInsensitive(t *testing.T) {
	for _, code := range []string{"SAVE20", "save20", " Save20 "} {
		c, err := LookupCoupon(code)
		if err != nil || c.Percent != 20 {
			t.Fatalf("%q: %+v %v", code, c, err)
		}
	}
	if _, err := LookupCoupon(""); !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("empty code must fail")
	}
}

func TestFlow_StageTransitions(t *testing.T) {
	ctx := context.Background()
	f, c := setupFlow(t)
	if err := c.Add(ctx, "p1", 1, nil); err != nil {
		t.Fatal(err)
	}

	if f.Stage() != StageShipping {
		t.Fatalf("new flow must start at shipping")
	}
	// placing an order straight away is out of order
	if _, err := f.PlaceOrder(ctx); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}

	if err := f.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("shipping err: %v", err)
	}
	if f.Stage() != StagePayment {
		t.Fatalf("want payment stage, got %s", f.Stage())
	}
	// shipping can only be submitted once per flow
	if err := f.SubmitShipping(validAddress()); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}

	o, err := f.PlaceOrder(ctx)
	if err != nil {
		t.Fatalf("place err: %v", err)
	}
	if f.Stage() != StageConfirmation || f.OrderID() != o.ID {
		t.Fatalf("confirmation state wrong: %s %s", f.Stage(), f.OrderID())
	}
}

func TestFlow_ShippingValidation(t *testing.T) {
	ctx := context.Background()
	f, c := setupFlow(t)
	if err := c.Add(ctx, "p1", 1, nil); err != nil {
		t.Fatal(err)
	}

	a := validAddress()
	a.ZipCode = ""
	if err := f.SubmitShipping(a); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	// the flow stays on the shipping stage after a failed submit
	if f.Stage() != StageShipping {
		t.Fatalf("stage must not advance")
	}
}

func TestFlow_EmptyCartAborts(t *testing.T) {
	f, _ := setupFlow(t)
	if err := f.SubmitShipping(validAddress()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestFlow_PlaceOrder_ClearsCartAndDiscounts(t *testing.T) {
	ctx := context.Background()
	f, c := setupFlow(t)
	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.SubmitShipping(validAddress()); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ApplyCoupon("FIRST50"); err != nil {
		t.Fatal(err)
	}

	o, err := f.PlaceOrder(ctx)
	if err != nil {
		t.Fatalf("place err: %v", err)
	}
	// 1000 minus 50 percent
	if o.TotalPrice != 500 {
		t.Fatalf("order total: want 500, got %d", o.TotalPrice)
	}
	if o.ShippingAddress.City != "Mumbai" {
		t.Fatalf("shipping address not carried: %+v", o.ShippingAddress)
	}
	if len(c.Items()) != 0 {
		t.Fatalf("cart must be cleared after placing the order")
	}
}
