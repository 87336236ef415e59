package ai

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Activation is the non-linearity applied after a dense layer.
type Activation int

const (
	ReLU Activation = iota
	Softmax
)

func (a Activation) String() string {
	switch a {
	case ReLU:
		return "relu"
	case Softmax:
		return "softmax"
	default:
		return "unknown"
	}
}

// apply writes activation(z) into dst, dst must be empty.
func (a Activation) apply(dst, z *mat.Dense) {
	switch a {
	case ReLU:
		dst.Apply(func(_, _ int, v float64) float64 {
			return math.Max(0, v)
		}, z)
	case Softmax:
		dst.CloneFrom(z)
		rows, _ := dst.Dims()
		for i := 0; i < rows; i++ {
			softmaxInPlace(dst.RawRowView(i))
		}
	}
}

// softmaxInPlace shifts by the row maximum so exp never overflows.
func softmaxInPlace(row []float64) {
	maxValue := math.Inf(-1)
	for _, v := range row {
		maxValue = math.Max(maxValue, v)
	}
	var sum float64
	for i, v := range row {
		row[i] = math.Exp(v - maxValue)
		sum += row[i]
	}
	for i := range row {
		row[i] /= sum
	}
}

// denseLayer is a fully-connected layer: out = activation(in·weights + bias).
type denseLayer struct {
	weights    *mat.Dense // inputs x units
	bias       *mat.Dense // 1 x units
	activation Activation
}

// newDenseLayer draws Glorot uniform weights and zero biases.
func newDenseLayer(inputs, units int, activation Activation, rnd *rand.Rand) denseLayer {
	limit := math.Sqrt(6 / float64(inputs+units))
	data := make([]float64, inputs*units)
	for i := range data {
		data[i] = (rnd.Float64()*2 - 1) * limit
	}
	return denseLayer{
		weights:    mat.NewDense(inputs, units, data),
		bias:       mat.NewDense(1, units, nil),
		activation: activation,
	}
}

func (l denseLayer) units() int {
	_, c := l.weights.Dims()
	return c
}

// forward writes the pre-activation into z and the activation into out.
func (l denseLayer) forward(z, out *mat.Dense, in mat.Matrix) {
	z.Mul(in, l.weights)
	z.Apply(func(_, j int, v float64) float64 {
		return v + l.bias.At(0, j)
	}, z)
	l.activation.apply(out, z)
}

// columnSums writes the sum of every column of m into dst as a 1 x c row.
func columnSums(dst *mat.Dense, m *mat.Dense) {
	rows, cols := m.Dims()
	dst.ReuseAs(1, cols)
	for i := 0; i < rows; i++ {
		for j, v := range m.RawRowView(i) {
			dst.Set(0, j, dst.At(0, j)+v)
		}
	}
}
