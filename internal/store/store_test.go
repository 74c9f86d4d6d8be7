package store

import (
	"testing"

	"github.com/borgespro/golist/internal/database"
	"github.com/borgespro/golist/internal/model"
)

func setupTestDB(t *testing.T) (*UserStore, *CategoryStore, *ProductStore, *ListStore, *ItemStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db), NewCategoryStore(db), NewProductStore(db), NewListStore(db), NewItemStore(db)
}

func createTestUser(t *testing.T, us *UserStore, email string) *model.User {
	t.Helper()
	u, err := us.Create(email, "Test User", "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}
