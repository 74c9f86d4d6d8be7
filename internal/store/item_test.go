package store

import "testing"

func TestItemCRUD(t *testing.T) {
	us, _, ps, ls, is := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	list, err := ls.Create(owner.ID, "Groceries", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	milk, err := ps.Create(owner.ID, "Milk", 1.99, nil)
	if err != nil {
		t.Fatalf("create milk: %v", err)
	}

	// Create
	item, err := is.Create(owner.ID, list.ID, &milk.ID, 4)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ListID != list.ID {
		t.Errorf("list_id = %d, want %d", item.ListID, list.ID)
	}
	if item.Product == nil || item.Product.Name != "Milk" {
		t.Fatalf("product = %+v, want embedded Milk", item.Product)
	}
	if item.TotalPrice != 4*1.99 {
		t.Errorf("total_price = %v, want %v", item.TotalPrice, 4*1.99)
	}

	// Create without product
	bare, err := is.Create(owner.ID, list.ID, nil, 2)
	if err != nil {
		t.Fatalf("create bare item: %v", err)
	}
	if bare.Product != nil {
		t.Errorf("product = %+v, want nil", bare.Product)
	}
	if bare.TotalPrice != 0 {
		t.Errorf("total_price = %v, want 0", bare.TotalPrice)
	}

	// Update
	updated, err := is.Update(owner.ID, item.ID, &milk.ID, 6)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Quantity != 6 {
		t.Errorf("quantity = %v, want 6", updated.Quantity)
	}
	if updated.TotalPrice != 6*1.99 {
		t.Errorf("total_price = %v, want %v", updated.TotalPrice, 6*1.99)
	}

	// Delete
	if err := is.Delete(owner.ID, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	got, err := is.GetByID(owner.ID, item.ID)
	if err != nil {
		t.Fatalf("get deleted item: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted item")
	}
}

func TestItemTransitiveOwnership(t *testing.T) {
	us, _, ps, ls, is := setupTestDB(t)
	john := createTestUser(t, us, "lennon@thebeatles.com")
	paul := createTestUser(t, us, "mccartney@thebeatles.com")

	list, err := ls.Create(john.ID, "Groceries", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	milk, err := ps.Create(john.ID, "Milk", 1.99, nil)
	if err != nil {
		t.Fatalf("create milk: %v", err)
	}
	item, err := is.Create(john.ID, list.ID, &milk.ID, 4)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	// The item's owner is derived through its parent list.
	got, err := is.GetByID(paul.ID, item.ID)
	if err != nil {
		t.Fatalf("get item as other owner: %v", err)
	}
	if got != nil {
		t.Error("expected nil for item under another owner's list")
	}

	items, count, err := is.ListByList(paul.ID, list.ID, QueryOptions{})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if count != 0 || len(items) != 0 {
		t.Errorf("expected empty page for other owner, got count=%d len=%d", count, len(items))
	}

	// Cross-owner mutations are no-ops.
	if _, err := is.Update(paul.ID, item.ID, &milk.ID, 99); err != nil {
		t.Fatalf("update as other owner: %v", err)
	}
	if err := is.Delete(paul.ID, item.ID); err != nil {
		t.Fatalf("delete as other owner: %v", err)
	}
	got, err = is.GetByID(john.ID, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got == nil {
		t.Fatal("item should survive another owner's delete")
	}
	if got.Quantity != 4 {
		t.Errorf("quantity = %v, want 4 after cross-owner update attempt", got.Quantity)
	}
}

func TestItemSearchByProductName(t *testing.T) {
	us, _, ps, ls, is := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	list, err := ls.Create(owner.ID, "Groceries", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	milk, err := ps.Create(owner.ID, "Milk", 1.99, nil)
	if err != nil {
		t.Fatalf("create milk: %v", err)
	}
	cheese, err := ps.Create(owner.ID, "Cheese", 5.10, nil)
	if err != nil {
		t.Fatalf("create cheese: %v", err)
	}
	if _, err := is.Create(owner.ID, list.ID, &milk.ID, 4); err != nil {
		t.Fatalf("add milk: %v", err)
	}
	if _, err := is.Create(owner.ID, list.ID, &cheese.ID, 9); err != nil {
		t.Fatalf("add cheese: %v", err)
	}

	items, count, err := is.ListByList(owner.ID, list.ID, QueryOptions{Search: "chee"})
	if err != nil {
		t.Fatalf("search items: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if items[0].Product == nil || items[0].Product.Name != "Cheese" {
		t.Errorf("items[0].Product = %+v, want Cheese", items[0].Product)
	}
}

func TestItemsOrderedByCreation(t *testing.T) {
	us, _, ps, ls, is := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	list, err := ls.Create(owner.ID, "Groceries", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	for _, name := range []string{"Zucchini", "Apples", "Milk"} {
		p, err := ps.Create(owner.ID, name, 1, nil)
		if err != nil {
			t.Fatalf("create product %s: %v", name, err)
		}
		if _, err := is.Create(owner.ID, list.ID, &p.ID, 1); err != nil {
			t.Fatalf("add item %s: %v", name, err)
		}
	}

	items, _, err := is.ListByList(owner.ID, list.ID, QueryOptions{})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	want := []string{"Zucchini", "Apples", "Milk"}
	for i, name := range want {
		if items[i].Product.Name != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Product.Name, name)
		}
	}
}

func TestProductDeleteRemovesItems(t *testing.T) {
	us, _, ps, ls, is := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	list, err := ls.Create(owner.ID, "Groceries", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	milk, err := ps.Create(owner.ID, "Milk", 1.99, nil)
	if err != nil {
		t.Fatalf("create milk: %v", err)
	}
	item, err := is.Create(owner.ID, list.ID, &milk.ID, 4)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := ps.Delete(owner.ID, milk.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	got, err := is.GetByID(owner.ID, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got != nil {
		t.Error("item should be gone after its product is deleted")
	}
}
