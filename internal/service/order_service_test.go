package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func setupOS(t *testing.T) (*OrderService, *ProductService) {
	t.Helper()
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)
	return NewOrderService(store, ordersRepo, tx), NewProductService(store)
}

func TestOrder_Create_Snapshots(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Garam Masala", Price: 299, Stock: 10, Images: []string{"gm.jpg"}})

	o, err := os.Create(ctx, "u1", []domain.CartItem{{ProductID: p.ID, Quantity: 2}}, domain.Address{City: "Mumbai"}, 598)
	if err != nil {
		t.Fatalf("create err: %v", err)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("want pending, got %s", o.Status)
	}
	if len(o.Products) != 1 {
		t.Fatalf("want 1 snapshot, got %d", len(o.Products))
	}
	snap := o.Products[0]
	if snap.ProductName != "Garam Masala" || snap.Price != 299 || snap.Image != "gm.jpg" || snap.Quantity != 2 {
		t.Fatalf("snapshot wrong: %+v", snap)
	}

	// later catalog edits must not rewrite order history
	name := "Renamed"
	price := int64(999)
	if _, err := ps.Update(ctx, p.ID, ProductUpdate{Name: &name, Price: &price}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.Get(ctx, o.ID)
	if got.Products[0].ProductName != "Garam Masala" || got.Products[0].Price != 299 {
		t.Fatalf("snapshot mutated by catalog edit: %+v", got.Products[0])
	}
}

func TestOrder_Create_StockUntouched(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Turmeric", Price: 149, Stock: 5})

	if _, err := os.Create(ctx, "u1", []domain.CartItem{{ProductID: p.ID, Quantity: 3}}, domain.Address{}, 447); err != nil {
		t.Fatalf("create err: %v", err)
	}
	got, _ := ps.GetByID(ctx, p.ID)
	if got.Stock != 5 {
		t.Fatalf("stock must not be decremented, got %d", got.Stock)
	}
}

func TestOrder_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "A", Price: 1, Stock: 1})

	if _, err := os.Create(ctx, "", []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, domain.Address{}, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := os.Create(ctx, "u1", nil, domain.Address{}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := os.Create(ctx, "u1", []domain.CartItem{{ProductID: "missing", Quantity: 1}}, domain.Address{}, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrder_UpdateStatus_AnyTransition(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "A", Price: 10, Stock: 1})
	o, _ := os.Create(ctx, "u1", []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, domain.Address{}, 10)

	// transitions are not guarded, backwards moves included
	for _, st := range []domain.OrderStatus{
		domain.OrderStatusCancelled,
		domain.OrderStatusDelivered,
		domain.OrderStatusPending,
	} {
		got, err := os.UpdateStatus(ctx, o.ID, st)
		if err != nil {
			t.Fatalf("update to %s: %v", st, err)
		}
		if got.Status != st {
			t.Fatalf("want %s, got %s", st, got.Status)
		}
	}

	if _, err := os.UpdateStatus(ctx, o.ID, "shredded"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestOrder_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "A", Price: 10, Stock: 1})

	for i := 0; i < 3; i++ {
		if _, err := os.Create(ctx, "u1", []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, domain.Address{}, 10); err != nil {
			t.Fatal(err)
		}
	}
	list, err := os.ListForUser(ctx, "u1")
	if err != nil || len(list) != 3 {
		t.Fatalf("list: want 3, got %d (%v)", len(list), err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CreatedAt.Before(list[i].CreatedAt) {
			t.Fatalf("orders not newest-first at %d", i)
		}
	}
}

type captureNotifier struct {
	created []domain.Order
	updated []domain.Order
}

func (n *captureNotifier) OrderCreated(o domain.Order) { n.created = append(n.created, o) }
func (n *captureNotifier) OrderUpdated(o domain.Order) { n.updated = append(n.updated, o) }

func TestOrder_NotifierEvents(t *testing.T) {
	ctx := context.Background()
	os, ps := setupOS(t)
	n := &captureNotifier{}
	os.SetNotifier(n)

	p, _ := ps.Create(ctx, domain.Product{Name: "A", Price: 10, Stock: 1})
	o, _ := os.Create(ctx, "u1", []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, domain.Address{}, 10)
	if _, err := os.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped); err != nil {
		t.Fatal(err)
	}

	if len(n.created) != 1 || n.created[0].ID != o.ID {
		t.Fatalf("created events: %+v", n.created)
	}
	if len(n.updated) != 1 || n.updated[0].Status != domain.OrderStatusShipped {
		t.Fatalf("updated events: %+v", n.updated)
	}
}
