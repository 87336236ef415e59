package ai

import (
	"chat-bot/errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

// DefaultHiddenUnits are the widths of the two ReLU hidden layers.
var DefaultHiddenUnits = []int{16, 12}

const probabilityFloor = 1e-7

// NetworkConfig describes the shape of the classifier.
// Zero values for HiddenUnits and LearningRate select the defaults.
type NetworkConfig struct {
	Inputs       int
	Outputs      int
	HiddenUnits  []int
	LearningRate float64
	Seed         uint64
}

// EpochStats is reported after every full-batch pass.
type EpochStats struct {
	Epoch    int
	Loss     float64
	Accuracy float64
}

// TrainingReport summarizes a whole training run. Loss and Accuracy are
// those of the last epoch, measured on the training corpus itself.
type TrainingReport struct {
	Epochs   int
	Loss     float64
	Accuracy float64
	Duration time.Duration
}

// Network is a feed-forward classifier: ReLU hidden layers and a softmax
// output trained with categorical cross-entropy and Adam.
// Predict is safe for concurrent use once Train has returned; Train must not
// overlap with any other call.
type Network struct {
	layers       []denseLayer
	learningRate float64
	pool         *sync.Pool
}

func NewNetwork(cfg NetworkConfig) (*Network, error) {
	hidden := cfg.HiddenUnits
	if len(hidden) == 0 {
		hidden = DefaultHiddenUnits
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = DefaultLearningRate
	}
	if cfg.Inputs < 1 || cfg.Outputs < 1 || cfg.LearningRate < 0 {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs, learning rate %v",
			errors.ErrInvalidNetwork, cfg.Inputs, cfg.Outputs, cfg.LearningRate)
	}

	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	layers := make([]denseLayer, 0, len(hidden)+1)
	inputs := cfg.Inputs
	for _, units := range hidden {
		if units < 1 {
			return nil, fmt.Errorf("%w: hidden layer of %d units", errors.ErrInvalidNetwork, units)
		}
		layers = append(layers, newDenseLayer(inputs, units, ReLU, rnd))
		inputs = units
	}
	layers = append(layers, newDenseLayer(inputs, cfg.Outputs, Softmax, rnd))

	return &Network{
		layers:       layers,
		learningRate: cfg.LearningRate,
		pool:         newWorkspacePool(len(layers)),
	}, nil
}

func (n *Network) Inputs() int {
	r, _ := n.layers[0].weights.Dims()
	return r
}

func (n *Network) Outputs() int {
	return n.layers[len(n.layers)-1].units()
}

// Train runs epochs full-batch passes over features and one-hot targets.
// observe, when not nil, receives the statistics of every epoch.
func (n *Network) Train(features, targets [][]float64, epochs int, observe func(EpochStats)) (TrainingReport, error) {
	if epochs < 1 {
		return TrainingReport{}, errors.ErrInvalidEpochs
	}
	x, err := toDense(features, n.Inputs())
	if err != nil {
		return TrainingReport{}, fmt.Errorf("features: %w", err)
	}
	y, err := toDense(targets, n.Outputs())
	if err != nil {
		return TrainingReport{}, fmt.Errorf("targets: %w", err)
	}
	if len(features) != len(targets) {
		return TrainingReport{}, fmt.Errorf("%w: %d feature rows for %d targets",
			errors.ErrDimensionMismatch, len(features), len(targets))
	}

	start := time.Now()
	opt := newAdam(n.learningRate, n.params())
	var stats EpochStats
	for epoch := 1; epoch <= epochs; epoch++ {
		stats = n.epoch(x, y, opt)
		stats.Epoch = epoch
		if observe != nil {
			observe(stats)
		}
	}
	return TrainingReport{
		Epochs:   epochs,
		Loss:     stats.Loss,
		Accuracy: stats.Accuracy,
		Duration: time.Since(start),
	}, nil
}

// Predict returns the probability distribution over the output slots.
// It only reads the parameters.
func (n *Network) Predict(features []float64) ([]float64, error) {
	if len(features) != n.Inputs() {
		return nil, fmt.Errorf("%w: got %d features, want %d",
			errors.ErrDimensionMismatch, len(features), n.Inputs())
	}
	ws := n.acquire()
	defer n.release(ws)

	x := mat.NewDense(1, len(features), append([]float64(nil), features...))
	return mat.Row(nil, 0, n.forward(ws, x)), nil
}

func (n *Network) epoch(x, y *mat.Dense, opt *adam) EpochStats {
	ws := n.acquire()
	defer n.release(ws)

	out := n.forward(ws, x)
	stats := EpochStats{Loss: crossEntropy(out, y), Accuracy: accuracy(out, y)}
	n.backward(ws, x, y)
	opt.update(n.params(), ws.gradients())
	return stats
}

func (n *Network) forward(ws *workspace, x *mat.Dense) *mat.Dense {
	var in mat.Matrix = x
	for i, l := range n.layers {
		l.forward(ws.pre[i], ws.post[i], in)
		in = ws.post[i]
	}
	return ws.post[len(n.layers)-1]
}

// backward fills the weight and bias gradients of the workspace.
// Softmax followed by cross-entropy differentiates to (p - y) / rows.
func (n *Network) backward(ws *workspace, x, y *mat.Dense) {
	last := len(n.layers) - 1
	rows, _ := y.Dims()

	delta := ws.delta[last]
	delta.Sub(ws.post[last], y)
	delta.Scale(1/float64(rows), delta)

	for i := last; i >= 0; i-- {
		var in mat.Matrix = x
		if i > 0 {
			in = ws.post[i-1]
		}
		ws.gradW[i].Mul(in.T(), delta)
		columnSums(ws.gradB[i], delta)
		if i == 0 {
			break
		}

		ws.back[i].Mul(delta, n.layers[i].weights.T())
		pre := ws.pre[i-1]
		next := ws.delta[i-1]
		next.Apply(func(r, c int, v float64) float64 {
			if pre.At(r, c) <= 0 {
				return 0
			}
			return v
		}, ws.back[i])
		delta = next
	}
}

// params lists weights and biases in the order of workspace.gradients.
func (n *Network) params() []*mat.Dense {
	params := make([]*mat.Dense, 0, 2*len(n.layers))
	for _, l := range n.layers {
		params = append(params, l.weights, l.bias)
	}
	return params
}

func (n *Network) acquire() *workspace {
	return n.pool.Get().(*workspace)
}

func (n *Network) release(ws *workspace) {
	ws.reset()
	n.pool.Put(ws)
}

func toDense(rows [][]float64, cols int) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", errors.ErrDimensionMismatch)
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				errors.ErrDimensionMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

func crossEntropy(p, y *mat.Dense) float64 {
	rows, cols := p.Dims()
	var loss float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if t := y.At(i, j); t != 0 {
				loss -= t * math.Log(math.Min(math.Max(p.At(i, j), probabilityFloor), 1-probabilityFloor))
			}
		}
	}
	return loss / float64(rows)
}

func accuracy(p, y *mat.Dense) float64 {
	rows, _ := p.Dims()
	var hits int
	for i := 0; i < rows; i++ {
		predicted, _ := argMax(p.RawRowView(i))
		expected, _ := argMax(y.RawRowView(i))
		if predicted == expected {
			hits++
		}
	}
	return float64(hits) / float64(rows)
}

// argMax scans once; the first maximal index wins ties.
// It returns -1 for an empty slice.
func argMax(values []float64) (int, float64) {
	best, bestValue := -1, math.Inf(-1)
	for i, v := range values {
		if v > bestValue {
			best, bestValue = i, v
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestValue
}
