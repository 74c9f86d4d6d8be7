package auth

import (
	"context"
	"testing"
)

func TestWithPrincipalAndFromContext(t *testing.T) {
	p := Principal{
		UserID: 1,
		Email:  "lennon@thebeatles.com",
	}

	ctx := WithPrincipal(context.Background(), p)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected Principal in context")
	}
	if got.UserID != 1 {
		t.Errorf("UserID = %d, want 1", got.UserID)
	}
	if got.Email != "lennon@thebeatles.com" {
		t.Errorf("Email = %q, want %q", got.Email, "lennon@thebeatles.com")
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing Principal")
	}
}

func TestUserID(t *testing.T) {
	ctx := WithPrincipal(context.Background(), Principal{UserID: 7})
	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
}

func TestUserIDMissing(t *testing.T) {
	if UserID(context.Background()) != 0 {
		t.Error("expected 0 for missing context")
	}
}
