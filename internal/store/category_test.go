package store

import "testing"

func TestCategoryCRUD(t *testing.T) {
	us, cs, _, _, _ := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	// Create
	cat, err := cs.Create(owner.ID, "Dairy", "Milk, cheese, butter")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if cat.Title != "Dairy" {
		t.Errorf("title = %q, want %q", cat.Title, "Dairy")
	}
	if cat.OwnerID != owner.ID {
		t.Errorf("owner_id = %d, want %d", cat.OwnerID, owner.ID)
	}

	// Get
	got, err := cs.GetByID(owner.ID, cat.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got == nil || got.Title != "Dairy" {
		t.Fatalf("got = %+v, want Dairy", got)
	}

	// Update
	updated, err := cs.Update(owner.ID, cat.ID, "Dairy & Eggs", "")
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Title != "Dairy & Eggs" {
		t.Errorf("updated title = %q, want %q", updated.Title, "Dairy & Eggs")
	}
	if updated.Description != "" {
		t.Errorf("updated description = %q, want empty", updated.Description)
	}

	// Delete
	if err := cs.Delete(owner.ID, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err = cs.GetByID(owner.ID, cat.ID)
	if err != nil {
		t.Fatalf("get deleted category: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted category")
	}
}

func TestCategoryOwnerScoping(t *testing.T) {
	us, cs, _, _, _ := setupTestDB(t)
	john := createTestUser(t, us, "lennon@thebeatles.com")
	paul := createTestUser(t, us, "mccartney@thebeatles.com")

	cat, err := cs.Create(john.ID, "Bakery", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Another owner's record is indistinguishable from a missing one.
	got, err := cs.GetByID(paul.ID, cat.ID)
	if err != nil {
		t.Fatalf("get category as other owner: %v", err)
	}
	if got != nil {
		t.Error("expected nil for other owner's category")
	}

	// Cross-owner delete is a no-op.
	if err := cs.Delete(paul.ID, cat.ID); err != nil {
		t.Fatalf("delete as other owner: %v", err)
	}
	got, err = cs.GetByID(john.ID, cat.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got == nil {
		t.Error("category should survive another owner's delete")
	}

	// Collections silently narrow to the requester's records.
	categories, count, err := cs.List(paul.ID, QueryOptions{})
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if count != 0 || len(categories) != 0 {
		t.Errorf("expected empty page for other owner, got count=%d len=%d", count, len(categories))
	}
}

func TestCategoryListSearchAndOrder(t *testing.T) {
	us, cs, _, _, _ := setupTestDB(t)
	owner := createTestUser(t, us, "lennon@thebeatles.com")

	for _, title := range []string{"Bakery", "Dairy", "Produce"} {
		if _, err := cs.Create(owner.ID, title, ""); err != nil {
			t.Fatalf("create category %s: %v", title, err)
		}
	}

	// Default ordering is by title.
	categories, count, err := cs.List(owner.ID, QueryOptions{})
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	want := []string{"Bakery", "Dairy", "Produce"}
	for i, title := range want {
		if categories[i].Title != title {
			t.Errorf("categories[%d].Title = %q, want %q", i, categories[i].Title, title)
		}
	}

	// Descending ordering.
	categories, _, err = cs.List(owner.ID, QueryOptions{Ordering: "-title"})
	if err != nil {
		t.Fatalf("list categories desc: %v", err)
	}
	if categories[0].Title != "Produce" {
		t.Errorf("first = %q, want Produce", categories[0].Title)
	}

	// Case-insensitive substring search.
	categories, count, err = cs.List(owner.ID, QueryOptions{Search: "AIR"})
	if err != nil {
		t.Fatalf("search categories: %v", err)
	}
	if count != 1 || categories[0].Title != "Dairy" {
		t.Errorf("search = %+v (count %d), want single Dairy", categories, count)
	}
}
