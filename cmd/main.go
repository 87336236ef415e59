package main

import (
	"chat-bot/internal"
	"chat-bot/runtime"
	"chat-bot/runtime/workers"
	"chat-bot/services"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the chatbot and serves the terminal until stdin closes or a
// signal arrives. Every configuration error is returned before anything is trained.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	pipelineConfig, err := config.PipelineConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Corpus & Pipeline
	corpus, err := runtime.LoadCorpus(config.CorpusPath)
	if err != nil {
		return fmt.Errorf("corpus loading failed: %w", err)
	}
	pipeline, err := runtime.NewPipeline(log, corpus.Examples, pipelineConfig)
	if err != nil {
		return err
	}
	selector, err := services.NewReplySelector(corpus.Responses, nil)
	if err != nil {
		return err
	}
	chat := services.NewChatService(log, pipeline, selector)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background training under supervision
	sup := workers.NewSupervisor(log, config.RestartInterval).
		Add(workers.NewTrainingWorker(log, pipeline))
	go sup.Run(ctx)
	defer sup.Stop()

	// 5. Terminal
	log.Info("Chat bot started", "examples", len(corpus.Examples), "intents", len(corpus.Responses))
	err = newREPL(chat, os.Stdin, os.Stdout, config.Colours).Run(ctx)
	log.Info("Program stopped cleanly")
	return err
}
