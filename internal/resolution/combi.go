// Package resolution models the minimal free resolution of the binomial edge
// ideal of a complete graph and the candidate multiplicative structure on it.
//
// Basis elements pair a monomial in the 2n edge-ring variables x_0..x_{n-1},
// y_0..y_{n-1} with an S-part: the unit e() in homological degree zero, or
// e(xdeg,ydeg; v_0..v_h) with xdeg+ydeg = h+1 over an (h+1)-subset of the
// vertices in degree h. The differential, the multigraded product with unknown
// coefficients and the Leibniz calculus all operate on sparse linear
// combinations of these basis elements with ring.Poly coefficients.
package resolution

// EachCombination visits every k-subset of {0..n-1} in lexicographic order.
// Visits stop early when fn returns false. The slice passed to fn is reused
// between calls; callers must copy it to retain it.
func EachCombination(n, k int, fn func([]int) bool) {
	if k < 0 || k > n {
		return
	}
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	for {
		if !fn(comb) {
			return
		}
		// Advance to the next combination.
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}

// Combinations materializes all k-subsets of {0..n-1} in lexicographic order.
func Combinations(n, k int) [][]int {
	var out [][]int
	EachCombination(n, k, func(c []int) bool {
		cp := make([]int, len(c))
		copy(cp, c)
		out = append(out, cp)
		return true
	})
	return out
}

// Binomial returns the binomial coefficient C(n, k).
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	acc := int64(1)
	for i := 0; i < k; i++ {
		acc = acc * int64(n-i) / int64(i+1)
	}
	return acc
}

// CombinationTuple converts a strictly increasing subset of {0..d+len(comb)-1}
// into the exponent tuple of length len(comb)+1 with entries summing to d.
// This is the stars-and-bars bijection used to enumerate monomials of total
// degree d: the subset marks the bar positions.
func CombinationTuple(comb []int, d int) []int {
	if len(comb) == 0 {
		return []int{d}
	}
	t := make([]int, 0, len(comb)+1)
	t = append(t, comb[0])
	prev := comb[0]
	for _, c := range comb[1:] {
		t = append(t, c-prev-1)
		prev = c
	}
	t = append(t, d+len(comb)-(prev+1))
	return t
}
