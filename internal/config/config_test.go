package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.test")
	t.Setenv("GUEST_CART_STORE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend.URL != "http://backend.test" {
		t.Errorf("Expected backend URL from env, got %s", cfg.Backend.URL)
	}
	if cfg.GuestCart.Store != "memory" {
		t.Errorf("Expected memory guest cart store by default, got %s", cfg.GuestCart.Store)
	}
	if cfg.Checkout.StaffID != 1 {
		t.Errorf("Expected staff id 1, got %d", cfg.Checkout.StaffID)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.test")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("GUEST_CART_STORE", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %v", cfg.Backend.Timeout)
	}
	if len(cfg.CORS.AllowOrigins) != 2 || cfg.CORS.AllowOrigins[1] != "https://b.test" {
		t.Errorf("Unexpected origins: %v", cfg.CORS.AllowOrigins)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Expected rate limit disabled")
	}
	if cfg.GuestCart.Store != "postgres" {
		t.Errorf("Expected postgres store, got %s", cfg.GuestCart.Store)
	}
}

func TestLoadRejectsUnknownGuestCartStore(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.test")
	t.Setenv("GUEST_CART_STORE", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unknown guest cart store")
	}
}
