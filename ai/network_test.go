package ai

import (
	"chat-bot/errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func identity(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	return rows
}

func TestNewNetwork_Shape(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 7, Outputs: 3, Seed: 1})
	req.NoError(err)

	req.Equal(7, network.Inputs())
	req.Equal(3, network.Outputs())
	req.Len(network.layers, 3)
	req.Equal(16, network.layers[0].units())
	req.Equal(12, network.layers[1].units())
	req.Equal(ReLU, network.layers[0].activation)
	req.Equal(ReLU, network.layers[1].activation)
	req.Equal(Softmax, network.layers[2].activation)

	limit := math.Sqrt(6.0 / float64(7+16))
	r, c := network.layers[0].weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			req.LessOrEqual(math.Abs(network.layers[0].weights.At(i, j)), limit)
		}
	}
	for _, l := range network.layers {
		req.True(mat.Equal(l.bias, mat.NewDense(1, l.units(), nil)), "biases start at zero")
	}
}

func TestNewNetwork_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		cfg  NetworkConfig
	}{
		{name: "No inputs", cfg: NetworkConfig{Inputs: 0, Outputs: 2}},
		{name: "No outputs", cfg: NetworkConfig{Inputs: 2, Outputs: 0}},
		{name: "Empty hidden layer", cfg: NetworkConfig{Inputs: 2, Outputs: 2, HiddenUnits: []int{4, 0}}},
		{name: "Negative learning rate", cfg: NetworkConfig{Inputs: 2, Outputs: 2, LearningRate: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(tt.cfg)
			require.ErrorIs(t, err, errors.ErrInvalidNetwork)
		})
	}
}

func TestNetwork_PredictIsADistribution(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 5, Outputs: 4, Seed: 42})
	req.NoError(err)

	for _, features := range [][]float64{{0, 0, 0, 0, 0}, {1, 0, 1, 0, 1}, {1, 1, 1, 1, 1}} {
		p, err := network.Predict(features)
		req.NoError(err)
		req.Len(p, 4)
		var sum float64
		for _, v := range p {
			req.GreaterOrEqual(v, 0.0)
			req.LessOrEqual(v, 1.0)
			sum += v
		}
		req.InDelta(1.0, sum, 1e-9)
	}
}

func TestNetwork_PredictDimensionMismatch(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 2})
	req.NoError(err)

	_, err = network.Predict([]float64{1, 0})
	req.ErrorIs(err, errors.ErrDimensionMismatch)
}

func TestNetwork_PredictDoesNotMutateParameters(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 3, Seed: 7})
	req.NoError(err)
	_, err = network.Train(identity(3), identity(3), 20, nil)
	req.NoError(err)

	before := make([]*mat.Dense, 0)
	for _, p := range network.params() {
		before = append(before, mat.DenseCopyOf(p))
	}
	features := []float64{1, 0, 0}
	first, err := network.Predict(features)
	req.NoError(err)

	for i := 0; i < 5; i++ {
		again, err := network.Predict(features)
		req.NoError(err)
		req.Equal(first, again)
	}
	for i, p := range network.params() {
		req.True(mat.Equal(before[i], p), "parameter %d changed", i)
	}
	req.Equal([]float64{1, 0, 0}, features, "input is left untouched")
}

func TestNetwork_TrainLearnsTheCorpus(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 3, Seed: 3})
	req.NoError(err)

	var history []EpochStats
	report, err := network.Train(identity(3), identity(3), 300, func(s EpochStats) {
		history = append(history, s)
	})
	req.NoError(err)

	req.Equal(300, report.Epochs)
	req.Len(history, 300)
	req.Equal(1, history[0].Epoch)
	req.Equal(300, history[299].Epoch)
	req.Less(history[299].Loss, history[0].Loss)
	req.Equal(report.Loss, history[299].Loss)
	req.Equal(1.0, report.Accuracy)

	for i, features := range identity(3) {
		p, err := network.Predict(features)
		req.NoError(err)
		index, _ := argMax(p)
		req.Equal(i, index)
	}
}

func TestNetwork_TrainIsDeterministicForASeed(t *testing.T) {
	req := require.New(t)
	features := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 1}, {1, 0, 0, 1}}
	targets := [][]float64{{1, 0}, {0, 1}, {0, 1}, {1, 0}}

	predictions := func(seed uint64) [][]float64 {
		network, err := NewNetwork(NetworkConfig{Inputs: 4, Outputs: 2, Seed: seed})
		req.NoError(err)
		_, err = network.Train(features, targets, 150, nil)
		req.NoError(err)
		var out [][]float64
		for _, f := range features {
			p, err := network.Predict(f)
			req.NoError(err)
			out = append(out, p)
		}
		return out
	}

	req.Equal(predictions(99), predictions(99))
	req.NotEqual(predictions(99), predictions(100))
}

func TestNetwork_TrainRejectsInvalidInput(t *testing.T) {
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 3})
	require.NoError(t, err)

	tests := []struct {
		name     string
		features [][]float64
		targets  [][]float64
		epochs   int
		err      error
	}{
		{name: "No epoch", features: identity(3), targets: identity(3), epochs: 0, err: errors.ErrInvalidEpochs},
		{name: "No rows", features: nil, targets: nil, epochs: 1, err: errors.ErrDimensionMismatch},
		{name: "Short feature row", features: [][]float64{{1, 0}}, targets: [][]float64{{1, 0, 0}}, epochs: 1, err: errors.ErrDimensionMismatch},
		{name: "Wide target row", features: [][]float64{{1, 0, 0}}, targets: [][]float64{{1, 0, 0, 0}}, epochs: 1, err: errors.ErrDimensionMismatch},
		{name: "Row count mismatch", features: identity(3), targets: identity(3)[:2], epochs: 1, err: errors.ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := network.Train(tt.features, tt.targets, tt.epochs, nil)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNetwork_WorkspaceIsReleasedEmpty(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 3, Seed: 5})
	req.NoError(err)

	_, err = network.Train(identity(3), identity(3), 3, nil)
	req.NoError(err)
	_, err = network.Predict([]float64{0, 1, 0})
	req.NoError(err)

	ws := network.acquire()
	defer network.release(ws)
	for _, group := range [][]*mat.Dense{ws.pre, ws.post, ws.delta, ws.back, ws.gradW, ws.gradB} {
		for _, m := range group {
			req.True(m.IsEmpty())
		}
	}
}

func TestNetwork_ConcurrentPredict(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 3, Outputs: 3, Seed: 11})
	req.NoError(err)
	_, err = network.Train(identity(3), identity(3), 50, nil)
	req.NoError(err)

	expected, err := network.Predict([]float64{0, 0, 1})
	req.NoError(err)

	var wg sync.WaitGroup
	results := make([][]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = network.Predict([]float64{0, 0, 1})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		req.Equal(expected, got)
	}
}

// TestNetwork_GradientsMatchFiniteDifferences compares back-propagation with
// central differences. Entries whose perturbation flips a ReLU are skipped.
func TestNetwork_GradientsMatchFiniteDifferences(t *testing.T) {
	req := require.New(t)
	network, err := NewNetwork(NetworkConfig{Inputs: 4, Outputs: 3, HiddenUnits: []int{5, 3}, Seed: 21})
	req.NoError(err)

	x := mat.NewDense(4, 4, []float64{
		0.5, -0.2, 0.1, 0.9,
		-0.7, 0.3, 0.8, 0.0,
		0.2, 0.6, -0.4, 0.5,
		0.9, -0.1, 0.3, -0.6,
	})
	y := mat.NewDense(4, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		0, 1, 0,
	})

	loss := func() (float64, []bool) {
		ws := network.acquire()
		defer network.release(ws)
		out := network.forward(ws, x)
		var pattern []bool
		for _, pre := range ws.pre[:len(ws.pre)-1] {
			r, c := pre.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					pattern = append(pattern, pre.At(i, j) > 0)
				}
			}
		}
		return crossEntropy(out, y), pattern
	}

	ws := network.acquire()
	network.forward(ws, x)
	network.backward(ws, x, y)
	var analytic []*mat.Dense
	for _, g := range ws.gradients() {
		analytic = append(analytic, mat.DenseCopyOf(g))
	}
	network.release(ws)

	const h = 1e-5
	checked := 0
	for k, p := range network.params() {
		r, c := p.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				original := p.At(i, j)
				p.Set(i, j, original+h)
				plus, plusPattern := loss()
				p.Set(i, j, original-h)
				minus, minusPattern := loss()
				p.Set(i, j, original)

				if !equalPatterns(plusPattern, minusPattern) {
					continue
				}
				numeric := (plus - minus) / (2 * h)
				req.InDelta(numeric, analytic[k].At(i, j), 1e-6, "parameter %d at (%d,%d)", k, i, j)
				checked++
			}
		}
	}
	req.Greater(checked, 0)
}

func equalPatterns(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
