package ai

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// workspace holds the transient matrices of one forward/backward call.
// It is taken from a pool at the start of a call and handed back,
// emptied, when the call returns.
type workspace struct {
	pre   []*mat.Dense // pre-activations per layer
	post  []*mat.Dense // activations per layer
	delta []*mat.Dense // loss gradient w.r.t. pre-activations
	back  []*mat.Dense // loss gradient w.r.t. layer inputs
	gradW []*mat.Dense
	gradB []*mat.Dense
}

func newWorkspacePool(layers int) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			ws := &workspace{}
			for i := 0; i < layers; i++ {
				ws.pre = append(ws.pre, &mat.Dense{})
				ws.post = append(ws.post, &mat.Dense{})
				ws.delta = append(ws.delta, &mat.Dense{})
				ws.back = append(ws.back, &mat.Dense{})
				ws.gradW = append(ws.gradW, &mat.Dense{})
				ws.gradB = append(ws.gradB, &mat.Dense{})
			}
			return ws
		},
	}
}

// reset empties every matrix while keeping the backing storage for reuse.
func (ws *workspace) reset() {
	for _, group := range [][]*mat.Dense{ws.pre, ws.post, ws.delta, ws.back, ws.gradW, ws.gradB} {
		for _, m := range group {
			m.Reset()
		}
	}
}

// gradients interleaves weight and bias gradients in parameter order.
func (ws *workspace) gradients() []*mat.Dense {
	grads := make([]*mat.Dense, 0, 2*len(ws.gradW))
	for i := range ws.gradW {
		grads = append(grads, ws.gradW[i], ws.gradB[i])
	}
	return grads
}
