package stats

import "testing"

func TestClampTotalNeverDecreases(t *testing.T) {
	cases := []struct {
		recorded, live, want int
	}{
		{0, 0, 0},
		{0, 3, 3},
		{5, 3, 5}, // two tasks deleted: counter holds
		{5, 8, 8},
	}
	for _, c := range cases {
		if got := clampTotal(c.recorded, c.live); got != c.want {
			t.Errorf("clampTotal(%d, %d) = %d, want %d", c.recorded, c.live, got, c.want)
		}
	}
}

func TestCompletionRate(t *testing.T) {
	if got := completionRate(0, 0); got != 0 {
		t.Errorf("empty day rate = %v, want 0", got)
	}
	if got := completionRate(3, 4); got != 75 {
		t.Errorf("rate = %v, want 75", got)
	}
	if got := completionRate(4, 4); got != 100 {
		t.Errorf("rate = %v, want 100", got)
	}
}
