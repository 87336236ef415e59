package ai

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	DefaultLearningRate = 0.001
	adamBeta1           = 0.9
	adamBeta2           = 0.999
	adamEpsilon         = 1e-7
)

// adam is the adaptive-moment-estimation optimizer with its usual defaults.
// It keeps one first and second moment per parameter entry.
type adam struct {
	learningRate float64
	step         int
	first        [][]float64
	second       [][]float64
}

func newAdam(learningRate float64, params []*mat.Dense) *adam {
	o := &adam{learningRate: learningRate}
	for _, p := range params {
		r, c := p.Dims()
		o.first = append(o.first, make([]float64, r*c))
		o.second = append(o.second, make([]float64, r*c))
	}
	return o
}

// update applies one bias-corrected step, grads[i] matches params[i].
func (o *adam) update(params, grads []*mat.Dense) {
	o.step++
	correction1 := 1 - math.Pow(adamBeta1, float64(o.step))
	correction2 := 1 - math.Pow(adamBeta2, float64(o.step))

	for k, p := range params {
		raw := p.RawMatrix()
		g := grads[k]
		m, v := o.first[k], o.second[k]
		for i := 0; i < raw.Rows; i++ {
			for j := 0; j < raw.Cols; j++ {
				n := i*raw.Cols + j
				grad := g.At(i, j)
				m[n] = adamBeta1*m[n] + (1-adamBeta1)*grad
				v[n] = adamBeta2*v[n] + (1-adamBeta2)*grad*grad
				mHat := m[n] / correction1
				vHat := v[n] / correction2
				raw.Data[i*raw.Stride+j] -= o.learningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
			}
		}
	}
}
