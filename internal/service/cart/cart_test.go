package cart

import (
	"testing"

	"aswaq-storefront/internal/domain"
)

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "product " + id, Price: price}
}

func TestAddMergesQuantities(t *testing.T) {
	p := product("p1", 1000)
	var items Items

	// The merged quantity is the sum of every Add for the same id.
	for _, q := range []int{1, 2, 4} {
		items = items.Add(p, q)
	}

	if len(items) != 1 {
		t.Fatalf("expected a single line, got %d", len(items))
	}
	if items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[0].Quantity)
	}
}

func TestAddPreservesExistingLineFields(t *testing.T) {
	items := Items{}.Add(product("p1", 1000), 1)
	// A price change on the catalog product must not rewrite the line;
	// merge only touches quantity.
	repriced := product("p1", 9999)
	items = items.Add(repriced, 1)

	if items[0].Price != 1000 {
		t.Fatalf("merge must preserve the existing line's price, got %d", items[0].Price)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddIsPure(t *testing.T) {
	original := Items{}.Add(product("p1", 1000), 1)
	_ = original.Add(product("p2", 500), 1)
	_ = original.UpdateQuantity("p1", 5)

	if len(original) != 1 || original[0].Quantity != 1 {
		t.Fatalf("operations mutated their receiver: %+v", original)
	}
}

func TestUpdateQuantityReplaces(t *testing.T) {
	items := Items{}.Add(product("p1", 1000), 3)
	items = items.UpdateQuantity("p1", 2)

	if items[0].Quantity != 2 {
		t.Fatalf("expected replace semantics, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		items := Items{}.Add(product("p1", 1000), 3)
		items = items.UpdateQuantity("p1", q)
		if items.index("p1") != -1 {
			t.Fatalf("quantity %d should remove the line", q)
		}
	}
}

func TestRemove(t *testing.T) {
	items := Items{}.Add(product("p1", 1000), 1).Add(product("p2", 500), 1)
	items = items.Remove("p1")

	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	// Removing an absent id is a no-op.
	if got := items.Remove("p1"); len(got) != 1 {
		t.Fatalf("remove of absent id changed the cart: %+v", got)
	}
}

func TestDerivedTotals(t *testing.T) {
	items := Items{}.
		Add(product("p1", 1000), 2).
		Add(product("p2", 500), 1)

	if items.TotalItems() != 3 {
		t.Fatalf("expected totalItems 3, got %d", items.TotalItems())
	}
	if items.TotalPrice() != 2500 {
		t.Fatalf("expected totalPrice 2500, got %d", items.TotalPrice())
	}

	items = items.UpdateQuantity("p1", 0)
	if items.TotalItems() != 1 {
		t.Fatalf("expected totalItems 1 after removal, got %d", items.TotalItems())
	}
	if items.TotalPrice() != 500 {
		t.Fatalf("expected totalPrice 500 after removal, got %d", items.TotalPrice())
	}
}

func TestEmptyCartTotals(t *testing.T) {
	var items Items
	if items.TotalItems() != 0 || items.TotalPrice() != 0 {
		t.Fatalf("empty cart must total zero")
	}
}
