package testutil

import (
	"context"
	"testing"
	"time"
)

func TestNowAtReturnsFixedTime(t *testing.T) {
	fixed := time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC)
	clock := NowAt(fixed)
	if !clock().Equal(fixed) || !clock().Equal(fixed) {
		t.Fatalf("expected fixed clock, got %v", clock())
	}
}

func TestNewRecorderWithShutdown(t *testing.T) {
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil {
		t.Fatal("expected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}
