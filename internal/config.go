package internal

import (
	"chat-bot/ai"
	"chat-bot/runtime"
	"fmt"
	"time"
)

type Config struct {
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	CorpusPath          string        `env:"CORPUS_PATH"`
	ConfidenceThreshold float64       `env:"CONFIDENCE_THRESHOLD,default=0.3"`
	TrainingEpochs      int           `env:"TRAINING_EPOCHS,default=150"`
	LearningRate        float64       `env:"LEARNING_RATE,default=0.001"`
	TrainingSeed        *int          `env:"TRAINING_SEED"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	Colours             bool          `env:"COLOURS,default=true"`
}

// PipelineConfig maps the environment onto the training policy.
// Without TRAINING_SEED every start trains a different network.
func (c Config) PipelineConfig() (runtime.PipelineConfig, error) {
	cfg := runtime.DefaultPipelineConfig()
	cfg.ConfidenceThreshold = c.ConfidenceThreshold
	cfg.Epochs = c.TrainingEpochs
	cfg.LearningRate = c.LearningRate
	cfg.HiddenUnits = append([]int(nil), ai.DefaultHiddenUnits...)
	if c.TrainingSeed != nil {
		if *c.TrainingSeed < 0 {
			return runtime.PipelineConfig{}, fmt.Errorf("TRAINING_SEED must not be negative, got %d", *c.TrainingSeed)
		}
		cfg.Seed = uint64(*c.TrainingSeed)
	}
	return cfg, nil
}
