package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// solveAssignment finds the minimum-cost perfect matching on a square cost
// matrix using the Kuhn–Munkres algorithm with potentials (the
// Jonker-Volgenant formulation), O(n³). It returns assignment[i] = column
// matched to row i. Every column is used exactly once, so the result is a
// total permutation; the grow/shrink bookkeeping downstream relies on
// that bijection.
//
// Throughout this package rows index observations and columns index
// tracked slots. A nil or 0×0 matrix yields nil. A non-square matrix is a
// builder defect, not a runtime condition, and panics.
func solveAssignment(cost *mat.Dense) []int {
	if cost == nil {
		return nil
	}
	n, m := cost.Dims()
	if n != m {
		panic(fmt.Sprintf("track: assignment cost matrix is %d×%d, want square", n, m))
	}
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []int{0}
	}

	// 1-indexed arrays internally for cleaner index arithmetic; column 0
	// is a virtual column.
	const inf = math.MaxFloat64 / 2

	u := make([]float64, n+1)    // Row potentials
	v := make([]float64, n+1)    // Column potentials
	p := make([]int, n+1)        // p[j] = row assigned to column j
	way := make([]int, n+1)      // way[j] = previous column in augmenting path
	minv := make([]float64, n+1) // Minimum reduced cost seen per column
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0

		for j := 1; j <= n; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			if j1 < 0 {
				break
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= n; j++ {
		assignment[p[j]-1] = j - 1
	}
	return assignment
}
