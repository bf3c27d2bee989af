package redis

import (
	"context"
	"testing"
	"time"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client := Disabled()
	if client.Enabled() {
		t.Fatal("Expected client to be disabled")
	}

	cache := NewCache(client, "stockpulse")
	ctx := context.Background()

	if err := cache.Set(ctx, BhavcopyKey("02JAN2024"), map[string]float64{"RELIANCE": 2610.5}, TTLDaily); err != nil {
		t.Errorf("Set on disabled client should be a no-op, got %v", err)
	}

	var dest map[string]float64
	found, err := cache.Get(ctx, BhavcopyKey("02JAN2024"), &dest)
	if err != nil {
		t.Errorf("Get on disabled client should not error, got %v", err)
	}
	if found {
		t.Error("Get on disabled client should always miss")
	}

	if err := cache.Delete(ctx, BhavcopyKey("02JAN2024")); err != nil {
		t.Errorf("Delete on disabled client should be a no-op, got %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close on disabled client should not error, got %v", err)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := BhavcopyKey("02JAN2024"); got != "bhavcopy:02JAN2024" {
		t.Errorf("BhavcopyKey = %q", got)
	}
	if got := DeliveryKey("02JAN2024"); got != "delivery:02JAN2024" {
		t.Errorf("DeliveryKey = %q", got)
	}
}

func TestTTLConstants(t *testing.T) {
	if TTLDaily != 24*time.Hour {
		t.Errorf("TTLDaily = %v", TTLDaily)
	}
}
