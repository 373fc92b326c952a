package util

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestShortID(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id, err := ShortID()
		if err != nil {
			t.Fatalf("ShortID failed: %v", err)
		}
		if len(id) != 6 {
			t.Fatalf("ShortID length = %d, want 6", len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(alphanumeric, r) {
				t.Fatalf("ShortID returned unexpected character %q in %q", r, id)
			}
		}
		seen[id] = true
	}

	// 100 draws from 62^6 values colliding down to a single ID would
	// mean the randomness is broken.
	if len(seen) < 2 {
		t.Error("ShortID returned the same value 100 times")
	}
}

func TestSleepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, 5*time.Second)
	if err != context.Canceled {
		t.Errorf("Sleep on cancelled context = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Sleep took %v after cancellation, want immediate return", elapsed)
	}
}

func TestSleepZeroDuration(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(ctx, 0) = %v, want nil", err)
	}
}
