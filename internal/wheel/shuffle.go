package wheel

import "math/rand"

// Shuffle returns a new arrangement of the same multiset of glyphs (Fisher–Yates).
func Shuffle(letters []string, rng *rand.Rand) []string {
	out := append([]string(nil), letters...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
