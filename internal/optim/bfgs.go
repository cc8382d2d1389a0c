package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
)

// CurvatureEpsilon is the lower bound on yk·s for an inverse-Hessian update.
const CurvatureEpsilon = 1e-8

// BFGS implements a damped quasi-Newton method on (w, b).
//
// Each iteration takes the step
//
//	θ' = θ - lr * H⁻¹ g
//
// where H⁻¹ approximates the inverse Hessian, starting at the identity.
// lr scales the quasi-Newton direction directly; there is no line search.
// After the step H⁻¹ gets the standard rank-two secant update
//
//	H⁻¹ = (I - ρ s ykᵀ) H⁻¹ (I - ρ yk sᵀ) + ρ s sᵀ,  ρ = 1 / (yk·s)
//
// with s = θ' - θ and yk = g' - g. When yk·s <= CurvatureEpsilon the update
// is skipped and H⁻¹ is kept as is for the next iteration.
type BFGS struct {
	lr         float64
	iterations int
}

// BFGSState is the explicit optimizer state between iterations.
type BFGSState struct {
	Theta linreg.Params
	HInv  *mat.Dense // 2x2 inverse-Hessian approximation
}

// NewBFGS creates a quasi-Newton optimizer.
//
// Zero or invalid fields in config are replaced by DefaultConfig values.
// Use New to reject invalid settings instead.
func NewBFGS(config Config) *BFGS {
	config = withDefaults(config)
	return &BFGS{
		lr:         config.LR,
		iterations: config.Iterations,
	}
}

// NewBFGSState returns the initial state at theta with H⁻¹ = I.
func NewBFGSState(theta linreg.Params) BFGSState {
	return BFGSState{
		Theta: theta,
		HInv:  identity2(),
	}
}

// BFGSStep performs one iteration from state and returns the next state.
//
// The returned bool reports whether the inverse-Hessian update was applied.
// state.HInv is never modified; the next state always owns a fresh matrix.
func BFGSStep(state BFGSState, x, y []float64, lr float64) (BFGSState, bool) {
	theta := paramsVec(state.Theta)
	g := gradVec(state.Theta, x, y)

	// θ' = θ - lr * H⁻¹ g
	var dir mat.VecDense
	dir.MulVec(state.HInv, g)
	var thetaNew mat.VecDense
	thetaNew.AddScaledVec(theta, -lr, &dir)

	next := vecParams(&thetaNew)
	gNew := gradVec(next, x, y)

	var s, yk mat.VecDense
	s.SubVec(&thetaNew, theta)
	yk.SubVec(gNew, g)

	hInv := mat.DenseCopyOf(state.HInv)
	sy := mat.Dot(&yk, &s)
	updated := sy > CurvatureEpsilon
	if updated {
		hInv = secantUpdate(state.HInv, &s, &yk, 1/sy)
	}

	return BFGSState{Theta: next, HInv: hInv}, updated
}

// Run performs the quasi-Newton iterations from init.
func (q *BFGS) Run(init linreg.Params, x, y []float64) (History, error) {
	if err := checkData(x, y); err != nil {
		return nil, err
	}

	state := NewBFGSState(init)
	history := make(History, 0, q.iterations)
	for range q.iterations {
		state, _ = BFGSStep(state, x, y, q.lr)
		history = history.record(state.Theta, x, y)
	}
	return history, nil
}

// Method returns QuasiNewton.
func (q *BFGS) Method() Method {
	return QuasiNewton
}

// GetLR returns the Newton-step multiplier.
func (q *BFGS) GetLR() float64 {
	return q.lr
}

// secantUpdate returns (I - ρ s ykᵀ) H (I - ρ yk sᵀ) + ρ s sᵀ.
func secantUpdate(h *mat.Dense, s, yk *mat.VecDense, rho float64) *mat.Dense {
	var left, right mat.Dense
	left.Outer(-rho, s, yk)
	left.Add(identity2(), &left)
	right.Outer(-rho, yk, s)
	right.Add(identity2(), &right)

	var tmp, out mat.Dense
	tmp.Mul(&left, h)
	out.Mul(&tmp, &right)

	var ss mat.Dense
	ss.Outer(rho, s, s)
	out.Add(&out, &ss)
	return &out
}

func identity2() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
}

func paramsVec(p linreg.Params) *mat.VecDense {
	return mat.NewVecDense(2, []float64{p.W, p.B})
}

func vecParams(v mat.Vector) linreg.Params {
	return linreg.Params{W: v.AtVec(0), B: v.AtVec(1)}
}

func gradVec(p linreg.Params, x, y []float64) *mat.VecDense {
	g := linreg.Gradients(p, x, y)
	return mat.NewVecDense(2, []float64{g.DW, g.DB})
}
