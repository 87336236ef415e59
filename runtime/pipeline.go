// Package runtime wires the classification core into a trainable, servable
// pipeline and loads its corpus.
package runtime

import (
	"chat-bot/ai"
	"chat-bot/domain"
	"chat-bot/errors"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
)

const (
	DefaultEpochs = 150
	logEveryEpoch = 25
)

// PipelineConfig holds the training policy values.
type PipelineConfig struct {
	ConfidenceThreshold float64
	Epochs              int
	LearningRate        float64
	HiddenUnits         []int
	Seed                uint64
}

// DefaultPipelineConfig uses a random seed, set Seed for reproducible training.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ConfidenceThreshold: ai.DefaultConfidenceThreshold,
		Epochs:              DefaultEpochs,
		LearningRate:        ai.DefaultLearningRate,
		HiddenUnits:         append([]int(nil), ai.DefaultHiddenUnits...),
		Seed:                rand.Uint64(),
	}
}

// Pipeline owns every training artifact: vocabulary, labels, network and
// conversation context. It is built once, trained once, then serves
// classifications concurrently.
type Pipeline struct {
	log          *slog.Logger
	examples     []domain.TrainingExample
	vocabulary   ai.Vocabulary
	labels       ai.LabelSet
	vectorizer   *ai.Vectorizer
	network      *ai.Network
	resolver     *ai.Resolver
	conversation *domain.ConversationContext
	epochs       int

	training sync.Mutex
	trained  atomic.Bool
	ready    chan struct{}
	report   ai.TrainingReport
}

// NewPipeline validates the corpus and the policy values and builds the
// vocabulary, the label set and an untrained network. Every failure is a
// *errors.ConfigurationError.
func NewPipeline(log *slog.Logger, examples []domain.TrainingExample, cfg PipelineConfig) (*Pipeline, error) {
	if len(examples) == 0 {
		return nil, errors.NewConfigurationError(errors.ErrEmptyCorpus, "")
	}
	for i, e := range examples {
		if e.Input == "" || e.Output == "" {
			return nil, errors.NewConfigurationError(errors.ErrInvalidExample, "example #%d: %+v", i, e)
		}
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, errors.NewConfigurationError(errors.ErrInvalidThreshold, "got %v", cfg.ConfidenceThreshold)
	}
	if cfg.Epochs < 1 {
		return nil, errors.NewConfigurationError(errors.ErrInvalidEpochs, "got %d", cfg.Epochs)
	}

	vocabulary := ai.BuildVocabulary(examples)
	labels := ai.BuildLabelSet(examples)
	if labels.Len() < 2 {
		log.Warn("Corpus has a single intent, every prediction will be the same", "intent", labels.Labels())
	}

	network, err := ai.NewNetwork(ai.NetworkConfig{
		Inputs:       vocabulary.Len(),
		Outputs:      labels.Len(),
		HiddenUnits:  cfg.HiddenUnits,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return nil, errors.NewConfigurationError(errors.ErrInvalidNetwork, "%v", err)
	}

	conversation := domain.NewConversationContext()
	return &Pipeline{
		log:          log,
		examples:     append([]domain.TrainingExample(nil), examples...),
		vocabulary:   vocabulary,
		labels:       labels,
		vectorizer:   ai.NewVectorizer(vocabulary),
		network:      network,
		resolver:     ai.NewResolver(cfg.ConfidenceThreshold, conversation),
		conversation: conversation,
		epochs:       cfg.Epochs,
		ready:        make(chan struct{}),
	}, nil
}

// Train runs the single training pass. A concurrent call gets
// ErrTrainingInProgress, a call after success gets ErrAlreadyTrained.
// Ready is closed when Train returns nil.
func (p *Pipeline) Train(ctx context.Context) error {
	if !p.training.TryLock() {
		return errors.ErrTrainingInProgress
	}
	defer p.training.Unlock()

	if p.trained.Load() {
		return errors.ErrAlreadyTrained
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	features := lo.Map(p.examples, func(e domain.TrainingExample, _ int) []float64 {
		return p.vectorizer.Features(e.Input)
	})
	targets := lo.Map(p.examples, func(e domain.TrainingExample, _ int) []float64 {
		return p.labels.OneHot(e.Output)
	})

	p.log.Info("Training started",
		"examples", len(p.examples),
		"vocabulary", p.vocabulary.Len(),
		"labels", p.labels.Len(),
		"epochs", p.epochs)

	report, err := p.network.Train(features, targets, p.epochs, func(s ai.EpochStats) {
		if s.Epoch%logEveryEpoch == 0 {
			p.log.Debug("Epoch", "epoch", s.Epoch, "loss", s.Loss, "accuracy", s.Accuracy)
		}
	})
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	p.report = report
	p.trained.Store(true)
	close(p.ready)

	p.log.Info("Model trained",
		"loss", report.Loss,
		"accuracy", report.Accuracy,
		"duration", report.Duration)
	return nil
}

// Ready is closed once the model is trained.
func (p *Pipeline) Ready() <-chan struct{} {
	return p.ready
}

// Report returns the training summary, false before training completed.
func (p *Pipeline) Report() (ai.TrainingReport, bool) {
	if !p.trained.Load() {
		return ai.TrainingReport{}, false
	}
	return p.report, true
}

// Classify resolves utterance to an intent and returns its tokens.
// It is rejected with ErrNotReady before training completed.
// An utterance without any vocabulary token resolves to the unknown intent
// without consulting the network.
func (p *Pipeline) Classify(_ context.Context, utterance string) (domain.Resolution, []string, error) {
	if !p.trained.Load() {
		return domain.Resolution{}, nil, errors.ErrNotReady
	}

	tokens := ai.Tokenize(utterance)
	features := p.vectorizer.FeaturesOf(tokens)
	p.log.Debug("Vectorized", "tokens", tokens, "vocabulary", p.vocabulary.Len(), "vector", features)

	if !ai.HasSignal(features) {
		return p.resolver.Resolve(nil, p.labels), tokens, nil
	}

	distribution, err := p.network.Predict(features)
	if err != nil {
		return domain.Resolution{}, tokens, err
	}
	resolution := p.resolver.Resolve(distribution, p.labels)
	p.log.Debug("Predicted", "index", resolution.Index, "confidence", resolution.Confidence, "intent", resolution.Intent)
	return resolution, tokens, nil
}

func (p *Pipeline) Vocabulary() ai.Vocabulary {
	return p.vocabulary
}

func (p *Pipeline) Labels() ai.LabelSet {
	return p.labels
}

func (p *Pipeline) Examples() []domain.TrainingExample {
	return append([]domain.TrainingExample(nil), p.examples...)
}

// Conversation exposes the last resolved intent to collaborators.
func (p *Pipeline) Conversation() *domain.ConversationContext {
	return p.conversation
}
