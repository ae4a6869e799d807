package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

// --- ClientIdentifier のテスト ---

func TestClientIdentifier_UsesFirstForwardedFor(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1, 10.0.0.2")

	if got := ClientIdentifier(req); got != "1.2.3.4" {
		t.Errorf("ClientIdentifier = %q, want %q", got, "1.2.3.4")
	}
}

func TestClientIdentifier_SingleValue(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set("X-Forwarded-For", "5.6.7.8")

	if got := ClientIdentifier(req); got != "5.6.7.8" {
		t.Errorf("ClientIdentifier = %q, want %q", got, "5.6.7.8")
	}
}

func TestClientIdentifier_MissingHeader_ReturnsUnknown(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)

	if got := ClientIdentifier(req); got != "unknown" {
		t.Errorf("ClientIdentifier = %q, want %q", got, "unknown")
	}
}

func TestClientIdentifier_EmptyHeader_ReturnsUnknown(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set("X-Forwarded-For", "  ,10.0.0.1")

	if got := ClientIdentifier(req); got != "unknown" {
		t.Errorf("ClientIdentifier = %q, want %q", got, "unknown")
	}
}

// --- AllowAll のテスト ---

func TestAllowAll_AlwaysAllows(t *testing.T) {
	limiter := NewAllowAll()

	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d: expected allowed", i)
		}
	}
}

// --- Memory のテスト ---

func TestMemory_AllowsUpToLimit(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Limit:           3,
		Window:          time.Hour,
		CleanupInterval: time.Minute,
	})
	defer m.Stop()

	for i := 0; i < 3; i++ {
		allowed, err := m.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d: expected allowed", i+1)
		}
	}
}

// シナリオD: 同一識別子からのウィンドウ内4回目は拒否されること
func TestMemory_DeniesFourthRequestInWindow(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Limit:           3,
		Window:          time.Hour,
		CleanupInterval: time.Minute,
	})
	defer m.Stop()

	for i := 0; i < 3; i++ {
		if allowed, _ := m.Allow(context.Background(), "1.2.3.4"); !allowed {
			t.Fatalf("request %d: expected allowed", i+1)
		}
	}

	allowed, err := m.Allow(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("4th request within window: expected denied")
	}
}

func TestMemory_IdentifiersHaveIndependentQuotas(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Limit:           3,
		Window:          time.Hour,
		CleanupInterval: time.Minute,
	})
	defer m.Stop()

	for i := 0; i < 3; i++ {
		m.Allow(context.Background(), "1.2.3.4")
	}
	if allowed, _ := m.Allow(context.Background(), "1.2.3.4"); allowed {
		t.Error("exhausted identifier: expected denied")
	}

	// 別の識別子は影響を受けない
	if allowed, _ := m.Allow(context.Background(), "9.9.9.9"); !allowed {
		t.Error("fresh identifier: expected allowed")
	}
}

// 新しいウィンドウでは同一識別子が再び許可されること
func TestMemory_FreshWindowAllowsAgain(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Limit:           3,
		Window:          60 * time.Millisecond,
		CleanupInterval: time.Minute,
	})
	defer m.Stop()

	for i := 0; i < 3; i++ {
		m.Allow(context.Background(), "1.2.3.4")
	}
	if allowed, _ := m.Allow(context.Background(), "1.2.3.4"); allowed {
		t.Fatal("expected denial after quota exhausted")
	}

	// ウィンドウ1周分待つとトークンが補充される
	time.Sleep(80 * time.Millisecond)

	if allowed, _ := m.Allow(context.Background(), "1.2.3.4"); !allowed {
		t.Error("fresh window: expected allowed")
	}
}

func TestMemory_CleanupRemovesIdleEntries(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Limit:           3,
		Window:          10 * time.Millisecond,
		CleanupInterval: time.Hour, // 自動実行させず手動でcleanupを呼ぶ
	})
	defer m.Stop()

	m.Allow(context.Background(), "1.2.3.4")
	m.Allow(context.Background(), "5.6.7.8")

	if got := m.EntryCount(); got != 2 {
		t.Fatalf("EntryCount = %d, want 2", got)
	}

	time.Sleep(20 * time.Millisecond)
	m.cleanup()

	if got := m.EntryCount(); got != 0 {
		t.Errorf("EntryCount after cleanup = %d, want 0", got)
	}
}
