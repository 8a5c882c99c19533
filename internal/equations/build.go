package equations

import (
	"runtime"
	"sync"

	"github.com/commalg/dgares/internal/resolution"
)

// Options controls system construction.
type Options struct {
	// Workers caps concurrent defect computations. Zero means one per CPU.
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// runJobs fans n jobs out to workers and waits for completion. Callers write
// results by index, so output order does not depend on scheduling.
func runJobs(workers, n int, fn func(int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}
	ch := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range ch {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		ch <- i
	}
	close(ch)
	wg.Wait()
}

// BuildLeibniz sweeps every ordered pair of S-basis elements with positive
// homological degrees summing to at most n and extracts each pair's Leibniz
// defect; past that bound every term of the identity vanishes. Monomial
// shifts move through both sides of the rule unchanged, so the zero-monomial
// S-basis generates the full system. Output order is deterministic for any
// worker count.
func BuildLeibniz(c *resolution.Complex, opts Options) *System {
	type pair struct{ f, g resolution.Basis }
	var jobs []pair
	for hf := 1; hf <= c.Length(); hf++ {
		for hg := 1; hf+hg <= c.N && hg <= c.Length(); hg++ {
			for _, f := range c.SBasis(hf) {
				for _, g := range c.SBasis(hg) {
					jobs = append(jobs, pair{f, g})
				}
			}
		}
	}
	defects := make([]resolution.Element, len(jobs))
	runJobs(opts.workers(), len(jobs), func(i int) {
		defects[i] = c.LeibnizDefectBasis(jobs[i].f, jobs[i].g)
	})
	sys := NewSystem(c.N, KindLeibniz)
	for i, d := range defects {
		sys.Extract(d, Source{
			Kind:    KindLeibniz,
			Factors: []string{jobs[i].f.Key(), jobs[i].g.Key()},
		})
	}
	return sys
}

// BuildAssociativity sweeps ordered triples of S-basis elements with degree
// sum at most n-1; beyond that both associations vanish termwise. The
// resulting equations are quadratic in the unknowns.
func BuildAssociativity(c *resolution.Complex, opts Options) *System {
	type triple struct{ f, g, h resolution.Basis }
	var jobs []triple
	for hf := 1; hf+2 <= c.N-1; hf++ {
		for hg := 1; hf+hg+1 <= c.N-1; hg++ {
			for hh := 1; hf+hg+hh <= c.N-1; hh++ {
				for _, f := range c.SBasis(hf) {
					for _, g := range c.SBasis(hg) {
						for _, h := range c.SBasis(hh) {
							jobs = append(jobs, triple{f, g, h})
						}
					}
				}
			}
		}
	}
	defects := make([]resolution.Element, len(jobs))
	runJobs(opts.workers(), len(jobs), func(i int) {
		j := jobs[i]
		defects[i] = c.Associator(
			resolution.Monomial(j.f),
			resolution.Monomial(j.g),
			resolution.Monomial(j.h),
		)
	})
	sys := NewSystem(c.N, KindAssociativity)
	for i, d := range defects {
		sys.Extract(d, Source{
			Kind:    KindAssociativity,
			Factors: []string{jobs[i].f.Key(), jobs[i].g.Key(), jobs[i].h.Key()},
		})
	}
	return sys
}
