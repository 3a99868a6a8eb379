package http

import "testing"

func TestRateLimiterAllowsWithinWindow(t *testing.T) {
	rl := newRateLimiter()
	for i := 0; i < rateLimitRequests; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("request over the limit must be rejected")
	}
	// Other clients keep their own window.
	if !rl.allow("10.0.0.2") {
		t.Fatal("unrelated client limited")
	}
}
