package generic

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_parseReset(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		desc    string
		given   string
		want    time.Time
		wantErr bool
	}{
		{
			desc:  "go style duration",
			given: "6m0s",
			want:  now.Add(6 * time.Minute),
		},
		{
			desc:  "unix timestamp",
			given: "1735689600",
			want:  time.Unix(1735689600, 0),
		},
		{
			desc:  "float seconds",
			given: "1.5",
			want:  now.Add(1500 * time.Millisecond),
		},
		{
			desc:    "garbage",
			given:   "whenever",
			wantErr: true,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := parseReset(tC.given)
			if tC.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			diff := got.Sub(tC.want)
			if diff < -time.Second || diff > time.Second {
				t.Fatalf("expected roughly: %v, got: %v", tC.want, got)
			}
		})
	}
}

func Test_UpdateFromHeaders(t *testing.T) {
	t.Run("it should parse remaining tokens and reset time", func(t *testing.T) {
		rl := NewRateLimiter("x-ratelimit-remaining-tokens", "x-ratelimit-reset-tokens")
		h := http.Header{}
		h.Set("x-ratelimit-remaining-tokens", "1234")
		h.Set("x-ratelimit-reset-tokens", "6m0s")

		err := rl.UpdateFromHeaders(h)
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		if rl.remainingTokens != 1234 {
			t.Errorf("expected 1234 remaining tokens, got: %v", rl.remainingTokens)
		}
		if rl.resetAt.IsZero() {
			t.Error("expected resetAt to be set")
		}
	})

	t.Run("it should error on missing headers", func(t *testing.T) {
		rl := NewRateLimiter("x-ratelimit-remaining-tokens", "x-ratelimit-reset-tokens")
		err := rl.UpdateFromHeaders(http.Header{})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("it should noop without configured headers", func(t *testing.T) {
		rl := RateLimiter{}
		err := rl.UpdateFromHeaders(http.Header{})
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
	})
}

func Test_WaitIfNeeded(t *testing.T) {
	t.Run("it should return at once when above the floor", func(t *testing.T) {
		rl := NewRateLimiter("a", "b")
		rl.remainingTokens = remainingTokenFloor + 1
		rl.resetAt = time.Now().Add(time.Hour)

		start := time.Now()
		rl.WaitIfNeeded(context.Background())
		if time.Since(start) > 100*time.Millisecond {
			t.Fatal("expected no wait")
		}
	})

	t.Run("it should respect context cancel while waiting", func(t *testing.T) {
		rl := NewRateLimiter("a", "b")
		rl.remainingTokens = 0
		rl.resetAt = time.Now().Add(time.Hour)

		testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
			rl.WaitIfNeeded(ctx)
		}, time.Second)
	})
}
