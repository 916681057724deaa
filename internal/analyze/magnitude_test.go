package analyze

import "testing"

func TestScoreMagnitude_Buckets(t *testing.T) {
	cases := []struct {
		added, deleted int
		want           float64
	}{
		{0, 0, 0.0},
		{3, 0, 0.2},
		{4, 0, 0.2},
		{5, 0, 0.4},
		{10, 9, 0.4},
		{20, 0, 0.6},
		{25, 24, 0.6},
		{60, 40, 1.0},
		{50, 30, 0.8},
		{99, 0, 0.8},
		{150, 60, 1.0},
	}
	for _, c := range cases {
		got := ScoreMagnitude(c.added, c.deleted, false, 0)
		if got != c.want {
			t.Errorf("ScoreMagnitude(%d, %d) = %v, want %v", c.added, c.deleted, got, c.want)
		}
	}
}

func TestScoreMagnitude_Monotonic(t *testing.T) {
	prev := -1.0
	for total := 0; total <= 200; total++ {
		got := ScoreMagnitude(total, 0, false, 0)
		if got < prev {
			t.Fatalf("score decreased at total=%d: %v < %v", total, got, prev)
		}
		prev = got
	}
}

func TestScoreMagnitude_RenameDampening(t *testing.T) {
	// Near-identical rename: 0.8 base × 0.3.
	if got := ScoreMagnitude(100, 0, true, 96); got > 0.3 {
		t.Fatalf("high-similarity rename = %v, want <= 0.3", got)
	}

	base := ScoreMagnitude(50, 50, false, 0)
	damped := ScoreMagnitude(50, 50, true, 85)
	if damped != base*0.6 {
		t.Fatalf("low-similarity rename = %v, want %v", damped, base*0.6)
	}

	// The multiplier must never increase the score.
	for _, sim := range []int{0, 50, 95, 96, 100} {
		plain := ScoreMagnitude(30, 30, false, 0)
		renamed := ScoreMagnitude(30, 30, true, sim)
		if renamed > plain {
			t.Fatalf("rename boosted score at similarity %d: %v > %v", sim, renamed, plain)
		}
	}
}

func TestNewMagnitude(t *testing.T) {
	m := NewMagnitude(60, 40, false, 0)
	if m.TotalLines != 100 || m.Score != 1.0 {
		t.Fatalf("unexpected magnitude: %+v", m)
	}
	if m.IsRename {
		t.Fatalf("unexpected rename flag: %+v", m)
	}
}
