package executor

import "testing"

func TestSelectBoundaries(t *testing.T) {
	cases := []struct {
		n, workers int
		strategy   Strategy
		bound      int
	}{
		{1, 8, StrategySequential, 1},
		{10, 8, StrategySequential, 1},
		{11, 8, StrategyPool, 8},
		{50, 8, StrategyPool, 8},
		{51, 8, StrategyProcess, 16},
		{500, 8, StrategyProcess, 16},
		{501, 8, StrategyProcessWide, 32},
		{100000, 8, StrategyProcessWide, 32},
	}
	for _, c := range cases {
		s, w := Select(c.n, c.workers)
		if s != c.strategy || w != c.bound {
			t.Fatalf("Select(%d, %d) = (%v, %d), want (%v, %d)", c.n, c.workers, s, w, c.strategy, c.bound)
		}
	}
}

func TestSelectWorkerCaps(t *testing.T) {
	if _, w := Select(30, 40); w != 16 {
		t.Fatalf("pool cap: got %d, want 16", w)
	}
	if _, w := Select(300, 40); w != 48 {
		t.Fatalf("process cap: got %d, want 48", w)
	}
	if _, w := Select(300, 31); w != 48 {
		t.Fatalf("process cap: got %d, want 48", w)
	}
	if _, w := Select(1000, 40); w != 61 {
		t.Fatalf("platform cap: got %d, want 61", w)
	}
	if _, w := Select(1000, 20); w != 61 {
		t.Fatalf("platform cap: got %d, want 61", w)
	}
}

func TestSelectSingleWorkerAlwaysSequential(t *testing.T) {
	for _, n := range []int{5, 100, 10000} {
		if s, w := Select(n, 1); s != StrategySequential || w != 1 {
			t.Fatalf("Select(%d, 1) = (%v, %d)", n, s, w)
		}
	}
}

func TestSelectPureFunction(t *testing.T) {
	s1, w1 := Select(600, 6)
	s2, w2 := Select(600, 6)
	if s1 != s2 || w1 != w2 {
		t.Fatal("Select must be deterministic")
	}
	if s1 != StrategyProcessWide || w1 != 24 {
		t.Fatalf("Select(600, 6) = (%v, %d)", s1, w1)
	}
}
