package cart

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func setupCart(t *testing.T) (*Cart, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	c := New("u1", repository.NewMemoryCarts(store), store)
	return c, store
}

func addProduct(t *testing.T, store *repository.MemoryStore, id string, price int64) {
	t.Helper()
	p := domain.Product{ID: id, Name: "product " + id, Price: price, Stock: 100}
	if err := store.Create(context.Background(), &p); err != nil {
		t.Fatal(err)
	}
}

func TestCart_Add_MergesDeltas(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)

	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatalf("add err: %v", err)
	}
	if err := c.Add(ctx, "p1", 3, nil); err != nil {
		t.Fatal(err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("deltas not merged: %+v", items)
	}
	if c.Count() != 5 {
		t.Fatalf("count: want 5, got %d", c.Count())
	}
}

func TestCart_Add_NegativeDeltaRemoves(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)

	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(ctx, "p1", -1, nil); err != nil {
		t.Fatal(err)
	}
	if items := c.Items(); len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("want quantity 1: %+v", items)
	}
	if err := c.Add(ctx, "p1", -1, nil); err != nil {
		t.Fatal(err)
	}
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("line must be gone after reaching zero: %+v", items)
	}
}

func TestCart_Add_InsertWithNonPositiveDeltaIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)

	if err := c.Add(ctx, "p1", -3, nil); err != nil {
		t.Fatalf("add err: %v", err)
	}
	if err := c.Add(ctx, "p1", 0, nil); err != nil {
		t.Fatal(err)
	}
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("no line should appear: %+v", items)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)

	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity(ctx, "p1", 7); err != nil {
		t.Fatal(err)
	}
	if items := c.Items(); items[0].Quantity != 7 {
		t.Fatalf("want 7, got %d", items[0].Quantity)
	}

	// zero removes the line
	if err := c.SetQuantity(ctx, "p1", 0); err != nil {
		t.Fatal(err)
	}
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("line must be removed: %+v", items)
	}

	// absent line is a no-op
	if err := c.SetQuantity(ctx, "p2", 5); err != nil {
		t.Fatalf("absent line must be a no-op: %v", err)
	}
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("no line should appear: %+v", items)
	}
}

func TestCart_Total_FromProductCache(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)
	addProduct(t, store, "p2", 149)

	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(ctx, "p2", 3, nil); err != nil {
		t.Fatal(err)
	}
	want := int64(2*299 + 3*149)
	if got := c.Total(); got != want {
		t.Fatalf("total: want %d, got %d", want, got)
	}
	if c.Count() != 5 {
		t.Fatalf("count: want 5, got %d", c.Count())
	}
}

func TestCart_TotalInvariantUnderReorder(t *testing.T) {
	ctx := context.Background()

	// any order of deltas producing the same final quantities gives the
	// same total
	sequences := [][]struct {
		pid   string
		delta int64
	}{
		{{"p1", 2}, {"p2", 3}, {"p1", 1}},
		{{"p2", 3}, {"p1", 3}},
		{{"p1", 5}, {"p2", 1}, {"p1", -2}, {"p2", 2}},
	}

	var totals []int64
	for _, seq := range sequences {
		c, store := setupCart(t)
		addProduct(t, store, "p1", 299)
		addProduct(t, store, "p2", 149)
		for _, step := range seq {
			if err := c.Add(ctx, step.pid, step.delta, nil); err != nil {
				t.Fatal(err)
			}
		}
		totals = append(totals, c.Total())
	}
	for i := 1; i < len(totals); i++ {
		if totals[i] != totals[0] {
			t.Fatalf("total depends on add order: %v", totals)
		}
	}
}

func TestCart_UnresolvedProductContributesZero(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	carts := repository.NewMemoryCarts(store)
	addProduct(t, store, "p1", 299)

	// a line whose product has vanished from the catalog stays dangling
	if err := carts.Save(ctx, "u1", []domain.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 4},
	}); err != nil {
		t.Fatal(err)
	}

	c := New("u1", carts, store)
	if err := c.Load(ctx); err != nil {
		t.Fatalf("load err: %v", err)
	}
	if got := c.Total(); got != 299 {
		t.Fatalf("dangling line must contribute zero: want 299, got %d", got)
	}
	// the line itself stays, only the total ignores it
	if len(c.Items()) != 2 {
		t.Fatalf("dangling line must survive: %+v", c.Items())
	}
	if c.Count() != 5 {
		t.Fatalf("count includes dangling lines: got %d", c.Count())
	}
}

func TestCart_PersistsAcrossLoad(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	carts := repository.NewMemoryCarts(store)
	addProduct(t, store, "p1", 299)

	c := New("u1", carts, store)
	if err := c.Add(ctx, "p1", 2, map[string]string{"weight": "100g"}); err != nil {
		t.Fatal(err)
	}

	// a fresh instance sees the same state
	c2 := New("u1", carts, store)
	if err := c2.Load(ctx); err != nil {
		t.Fatal(err)
	}
	items := c2.Items()
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Variant["weight"] != "100g" {
		t.Fatalf("cart not persisted: %+v", items)
	}
	if c2.Total() != 598 {
		t.Fatalf("total after load: want 598, got %d", c2.Total())
	}
}

func TestCart_SubscribeSeesSnapshots(t *testing.T) {
	ctx := context.Background()
	c, store := setupCart(t)
	addProduct(t, store, "p1", 299)

	var snaps []Snapshot
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	if err := c.Add(ctx, "p1", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if len(snaps) != 2 {
		t.Fatalf("want 2 notifications, got %d", len(snaps))
	}
	if snaps[0].Count != 2 || snaps[0].Total != 598 {
		t.Fatalf("first snapshot wrong: %+v", snaps[0])
	}
	if snaps[1].Count != 0 || len(snaps[1].Items) != 0 {
		t.Fatalf("clear snapshot wrong: %+v", snaps[1])
	}
}

func TestManager_ReusesCart(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	m := NewManager(repository.NewMemoryCarts(store), store)
	addProduct(t, store, "p1", 299)

	c1, err := m.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user err: %v", err)
	}
	if err := c1.Add(ctx, "p1", 1, nil); err != nil {
		t.Fatal(err)
	}

	c2, err := m.ForUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if c1 != c2 {
		t.Fatalf("expected the same cart instance")
	}

	other, _ := m.ForUser(ctx, "u2")
	if len(other.Items()) != 0 {
		t.Fatalf("carts must be per-user")
	}
}
