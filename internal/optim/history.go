package optim

import (
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
)

// Entry is the optimizer state captured after one iteration.
type Entry struct {
	W    float64 `json:"w"`
	B    float64 `json:"b"`
	Loss float64 `json:"loss"` // MSE in normalized space
}

// Params returns the entry's model parameters.
func (e Entry) Params() linreg.Params {
	return linreg.Params{W: e.W, B: e.B}
}

// History is the ordered per-iteration record of one optimization run.
//
// A History is never modified after Run returns.
type History []Entry

// record appends the entry for p, evaluating the loss on the data.
func (h History) record(p linreg.Params, x, y []float64) History {
	return append(h, Entry{W: p.W, B: p.B, Loss: linreg.Loss(p, x, y)})
}

// Final returns the last entry, or false if h is empty.
func (h History) Final() (Entry, bool) {
	if len(h) == 0 {
		return Entry{}, false
	}
	return h[len(h)-1], true
}

// At returns the entry at step, or false if step is out of range.
func (h History) At(step int) (Entry, bool) {
	if step < 0 || step >= len(h) {
		return Entry{}, false
	}
	return h[step], true
}

// Losses returns the loss of the first upTo+1 entries.
func (h History) Losses(upTo int) []float64 {
	n := clampLen(upTo, len(h))
	out := make([]float64, n)
	for i := range n {
		out[i] = h[i].Loss
	}
	return out
}

// Trajectory returns the (w, b) path of the first upTo+1 entries.
func (h History) Trajectory(upTo int) []linreg.Params {
	n := clampLen(upTo, len(h))
	out := make([]linreg.Params, n)
	for i := range n {
		out[i] = h[i].Params()
	}
	return out
}

func clampLen(upTo, n int) int {
	if upTo < 0 {
		return 0
	}
	return min(upTo+1, n)
}
