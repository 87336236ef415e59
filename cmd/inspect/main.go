package main

import (
	"chat-bot/runtime"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// inspect trains a pipeline on the configured corpus and prints how every
// training utterance resolves.
func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("Error while reading configuration: ", err)
	}

	corpus, err := runtime.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		log.Fatal(err)
	}

	pipelineConfig := runtime.DefaultPipelineConfig()
	pipelineConfig.Seed = cfg.Seed
	pipelineConfig.Epochs = cfg.Epochs

	pipeline, err := runtime.NewPipeline(logs.GetLoggerFromString(cfg.LogLevel), corpus.Examples, pipelineConfig)
	if err != nil {
		log.Fatal(err)
	}
	if err := pipeline.Train(context.Background()); err != nil {
		log.Fatal(err)
	}

	if err := report(os.Stdout, pipeline, cfg.OnlyMisses); err != nil {
		log.Fatal(err)
	}
}

func report(w io.Writer, pipeline *runtime.Pipeline, onlyMisses bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Utterance", "Expected", "Resolved", "Predicted", "Confidence"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	misses := 0
	examples := pipeline.Examples()
	for _, e := range examples {
		resolution, _, err := pipeline.Classify(context.Background(), e.Input)
		if err != nil {
			return err
		}
		hit := resolution.Intent == e.Output
		if !hit {
			misses++
		}
		if hit && onlyMisses {
			continue
		}
		table.Append([]string{
			e.Input,
			string(e.Output),
			string(resolution.Intent),
			string(resolution.Predicted),
			strconv.FormatFloat(resolution.Confidence, 'f', 3, 64),
		})
	}

	training, _ := pipeline.Report()
	table.SetFooter([]string{
		"",
		"",
		fmt.Sprintf("misses %d/%d", misses, len(examples)),
		fmt.Sprintf("loss %.4f", training.Loss),
		fmt.Sprintf("accuracy %.2f", training.Accuracy),
	})
	table.Render()
	return nil
}
