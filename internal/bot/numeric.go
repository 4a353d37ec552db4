package bot

import "golang.org/x/exp/constraints"

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

func absInt[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
