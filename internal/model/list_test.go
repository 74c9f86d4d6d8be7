package model

import (
	"testing"
	"time"
)

func TestListActiveAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		validAt *time.Time
		want    bool
	}{
		{"no expiry", nil, true},
		{"expires tomorrow", ptr(now.Add(24 * time.Hour)), true},
		{"one second ahead", ptr(now.Add(time.Second)), true},
		{"expired yesterday", ptr(now.Add(-24 * time.Hour)), false},
		{"one second behind", ptr(now.Add(-time.Second)), false},
		{"exactly now", ptr(now), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := List{Name: "Groceries", ValidAt: tt.validAt}
			if got := l.ActiveAt(now); got != tt.want {
				t.Errorf("ActiveAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
