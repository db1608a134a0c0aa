package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Saba3939/oneday-todo/internal/billing"
	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/stats"
	"github.com/Saba3939/oneday-todo/internal/store"
)

// failingChecker simulates a billing backend outage.
type failingChecker struct{}

func (failingChecker) IsPremium(ctx context.Context, owner string) (bool, error) {
	return false, errors.New("billing unavailable")
}

func TestCheckQuotaPremiumBypass(t *testing.T) {
	// db is nil on purpose: a premium owner must be waved through without
	// any count query, so touching the database here would panic.
	s := New(nil, "owner-1", billing.Static(true), stats.Nop{})

	day := clock.Day("2024-05-20")
	if err := s.checkQuota(context.Background(), day); err != nil {
		t.Fatalf("checkQuota for premium owner = %v, want nil", err)
	}
}

func TestCheckQuotaBillingError(t *testing.T) {
	s := New(nil, "owner-1", failingChecker{}, stats.Nop{})

	err := s.checkQuota(context.Background(), clock.Day("2024-05-20"))
	if err == nil {
		t.Fatal("checkQuota with failing billing = nil, want error")
	}
	if store.IsQuota(err) {
		t.Errorf("billing failure reported as quota error: %v", err)
	}
}

func TestFreeTierQuota(t *testing.T) {
	tests := []struct {
		count     int
		wantQuota bool
	}{
		{0, false},
		{store.FreeDailyLimit - 1, false},
		{store.FreeDailyLimit, true},
		{store.FreeDailyLimit + 4, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("count=%d", tt.count), func(t *testing.T) {
			err := freeTierQuota(tt.count)
			if tt.wantQuota != store.IsQuota(err) {
				t.Fatalf("freeTierQuota(%d) = %v, want quota=%v", tt.count, err, tt.wantQuota)
			}
			if !tt.wantQuota && err != nil {
				t.Fatalf("freeTierQuota(%d) = %v, want nil", tt.count, err)
			}
			if tt.wantQuota {
				var qe *store.QuotaError
				if !errors.As(err, &qe) {
					t.Fatalf("freeTierQuota(%d) = %T, want *store.QuotaError", tt.count, err)
				}
				if qe.Limit != store.FreeDailyLimit || qe.Count != tt.count {
					t.Errorf("quota error = limit %d count %d, want limit %d count %d",
						qe.Limit, qe.Count, store.FreeDailyLimit, tt.count)
				}
			}
		})
	}
}
