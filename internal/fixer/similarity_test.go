package fixer

import "testing"

func TestSimilarity_IdentityAfterCaseFold(t *testing.T) {
	titles := []string{
		"Deep Learning",
		"Attention Is All You Need",
		"a",
	}
	for _, s := range titles {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
	if got := Similarity("Deep Learning", "DEEP LEARNING"); got != 1.0 {
		t.Errorf("case difference should not matter, got %v", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Deep Learning", "Deep Learning Survey"},
		{"Deep Learning", "A Survey of Deep Reinforcement Learning"},
		{"Graph Neural Networks", "Neural Message Passing for Quantum Chemistry"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Continuous(t *testing.T) {
	// Near match: above the threshold but not exact.
	near := Similarity("Deep Learning", "Deep Learning Survey")
	if near < MatchThreshold || near >= 1.0 {
		t.Errorf("near match = %v, want in [%v, 1)", near, MatchThreshold)
	}

	// Partial overlap: clearly below the threshold but not zero.
	partial := Similarity("Deep Learning", "A Survey of Deep Reinforcement Learning")
	if partial <= 0 || partial >= MatchThreshold {
		t.Errorf("partial match = %v, want in (0, %v)", partial, MatchThreshold)
	}

	// Disjoint strings score zero.
	if got := Similarity("aaaa", "zzzz"); got != 0 {
		t.Errorf("disjoint strings = %v, want 0", got)
	}
}
