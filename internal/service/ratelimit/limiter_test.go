package ratelimit

import (
	"testing"
	"time"
)

func TestAllowExhaustsBucket(t *testing.T) {
	l := New(2, 0)
	now := time.Now()
	if !l.allowAt("a", now) || !l.allowAt("a", now) {
		t.Fatalf("first two requests should be allowed")
	}
	if l.allowAt("a", now) {
		t.Fatalf("third request should be rejected")
	}
}

func TestRefill(t *testing.T) {
	l := New(1, 1)
	now := time.Now()
	if !l.allowAt("a", now) {
		t.Fatalf("first request should be allowed")
	}
	if l.allowAt("a", now) {
		t.Fatalf("bucket should be empty")
	}
	if !l.allowAt("a", now.Add(1500*time.Millisecond)) {
		t.Fatalf("bucket should refill after 1.5s at 1 token/s")
	}
}

func TestKeysIsolated(t *testing.T) {
	l := New(1, 0)
	now := time.Now()
	if !l.allowAt("a", now) {
		t.Fatalf("key a should be allowed")
	}
	if !l.allowAt("b", now) {
		t.Fatalf("key b has its own bucket")
	}
}

func TestPrune(t *testing.T) {
	l := New(1, 0)
	l.allowAt("a", time.Now().Add(-time.Hour))
	l.Prune(time.Minute)
	l.mu.Lock()
	n := len(l.m)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle bucket pruned, %d left", n)
	}
}
