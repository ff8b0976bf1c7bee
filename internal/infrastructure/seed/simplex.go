package seed

import (
	"gonum.org/v1/gonum/mat"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
)

// bigM is the penalty weight applied to phase-1 artificial variables. It
// must dominate every real objective coefficient (fluxes are bounded by the
// package's infBound sentinel) without overflowing tableau arithmetic.
const bigM = 1e7

// simplexEpsilon is the tolerance used for reduced-cost and ratio-test
// zero comparisons; flux values below it are treated as exactly zero.
const simplexEpsilon = 1e-9

// maxSimplexIterations bounds pivoting so a degenerate or cycling tableau
// degrades to StatusOther instead of looping forever.
const maxSimplexIterations = 20000

// lpProblem is an equality-constrained, box-bounded linear program in the
// flux-balance shape: maximize/minimize objective^T x subject to
// stoich * x = 0 and lower <= x <= upper. One row of stoich per metabolite,
// one column per reaction, in the order given by varIDs.
type lpProblem struct {
	varIDs    []string
	lower     []float64
	upper     []float64
	stoich    [][]float64 // len(stoich) == number of metabolite rows
	objective []float64   // len(objective) == len(varIDs)
	maximize  bool
}

// lpResult is the outcome of solveLP: the flux assigned to each varIDs
// entry (nil when infeasible or unbounded) and the achieved objective value
// in the caller's original (not internally negated) sense.
type lpResult struct {
	status    model.OptimizeStatus
	fluxes    map[string]float64
	objective float64
}

// solveLP runs a Big-M two-phase-in-one-pass tableau simplex. Bounded
// variables are handled by shifting each x_j to y_j = x_j - lower_j >= 0 and
// adding an explicit row y_j + slack_j = upper_j - lower_j, rather than the
// more compact bounded-variable pivoting rule — this keeps the tableau a
// plain nonnegative-variable LP that a textbook simplex loop can solve
// directly.
func solveLP(prob lpProblem) lpResult {
	n := len(prob.varIDs)
	m := len(prob.stoich)
	if n == 0 {
		return lpResult{status: model.StatusOther}
	}

	width := spans(prob.upper, prob.lower)

	// Column layout: [0, n)=y, [n, 2n)=upper-bound slacks, [2n, 2n+m)=EQ
	// artificials, final column = RHS. Upper-bound rows start with their
	// own slack already in the basis (width_j >= 0 is guaranteed upstream),
	// so they need no artificial of their own.
	numCols := 2*n + m + 1
	numRows := m + n + 1 // +1 objective row

	tab := mat.NewDense(numRows, numCols, nil)
	basis := make([]int, m+n)

	// Equality rows: stoich * y = b', b' = -stoich * lower.
	for i := 0; i < m; i++ {
		var rhs float64
		for j := 0; j < n; j++ {
			coeff := prob.stoich[i][j]
			tab.Set(i, j, coeff)
			rhs -= coeff * prob.lower[j]
		}
		if rhs < 0 {
			rhs = -rhs
			for j := 0; j < n; j++ {
				tab.Set(i, j, -tab.At(i, j))
			}
		}
		tab.Set(i, 2*n+i, 1) // artificial
		tab.Set(i, numCols-1, rhs)
		basis[i] = 2*n + i
	}

	// Upper-bound rows: y_j + slack_j = width_j.
	for j := 0; j < n; j++ {
		row := m + j
		tab.Set(row, j, 1)
		tab.Set(row, n+j, 1)
		tab.Set(row, numCols-1, width[j])
		basis[row] = n + j
	}

	// Objective row (minimize): internal cost = -objective when maximizing,
	// so the same "drive reduced costs to >= 0" loop works for both senses.
	objRow := numRows - 1
	sign := 1.0
	if prob.maximize {
		sign = -1.0
	}
	for j := 0; j < n; j++ {
		tab.Set(objRow, j, sign*prob.objective[j])
	}
	for i := 0; i < m; i++ {
		tab.Set(objRow, 2*n+i, bigM)
	}
	// Canonicalize the objective row against the initial artificial basis.
	for i := 0; i < m; i++ {
		factor := tab.At(objRow, 2*n+i)
		if factor == 0 {
			continue
		}
		for j := 0; j < numCols; j++ {
			tab.Set(objRow, j, tab.At(objRow, j)-factor*tab.At(i, j))
		}
	}

	for iter := 0; iter < maxSimplexIterations; iter++ {
		enter := -1
		best := -simplexEpsilon
		for j := 0; j < numCols-1; j++ {
			if tab.At(objRow, j) < best {
				best = tab.At(objRow, j)
				enter = j
			}
		}
		if enter == -1 {
			break // optimal
		}

		leave := -1
		bestRatio := 0.0
		for i := 0; i < m+n; i++ {
			coeff := tab.At(i, enter)
			if coeff <= simplexEpsilon {
				continue
			}
			ratio := tab.At(i, numCols-1) / coeff
			if leave == -1 || ratio < bestRatio {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return lpResult{status: model.StatusUnbounded}
		}

		pivot(tab, leave, enter, numRows, numCols)
		basis[leave] = enter
	}

	for i := 0; i < m; i++ {
		if basis[i] == 2*n+i && tab.At(i, numCols-1) > 1e-6 {
			return lpResult{status: model.StatusInfeasible}
		}
	}

	y := make([]float64, n)
	for row, col := range basis {
		if row < m+n && col < n {
			y[col] = tab.At(row, numCols-1)
		}
	}

	fluxes := make(map[string]float64, n)
	var objVal float64
	for j, id := range prob.varIDs {
		x := y[j] + prob.lower[j]
		if abs(x) < simplexEpsilon {
			x = 0
		}
		fluxes[id] = x
		objVal += prob.objective[j] * x
	}

	return lpResult{status: model.StatusOptimal, fluxes: fluxes, objective: objVal}
}

func pivot(tab *mat.Dense, row, col, numRows, numCols int) {
	p := tab.At(row, col)
	for j := 0; j < numCols; j++ {
		tab.Set(row, j, tab.At(row, j)/p)
	}
	for i := 0; i < numRows; i++ {
		if i == row {
			continue
		}
		factor := tab.At(i, col)
		if factor == 0 {
			continue
		}
		for j := 0; j < numCols; j++ {
			tab.Set(i, j, tab.At(i, j)-factor*tab.At(row, j))
		}
	}
}

func spans(upper, lower []float64) []float64 {
	out := make([]float64, len(upper))
	for i := range upper {
		out[i] = upper[i] - lower[i]
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
