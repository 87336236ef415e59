package main

import "github.com/kelseyhightower/envconfig"

type Config struct {
	CorpusPath string `envconfig:"CORPUS_PATH"`
	// INSPECT_SEED makes successive reports comparable
	Seed     uint64 `envconfig:"INSPECT_SEED" default:"1"`
	Epochs   int    `envconfig:"TRAINING_EPOCHS" default:"150"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"WARN"`
	// INSPECT_ONLY_MISSES hides the utterances resolved to their expected intent
	OnlyMisses bool `envconfig:"INSPECT_ONLY_MISSES" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
