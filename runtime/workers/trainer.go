package workers

import (
	"chat-bot/contract"
	"chat-bot/errors"
	"context"
	stderrors "errors"
	"log/slog"
)

// TrainingWorker runs the training pass of a pipeline in the background so
// startup is not blocked. Classification requests wait for the pipeline's
// readiness, not for this worker.
type TrainingWorker struct {
	log     *slog.Logger
	trainer contract.Trainer
}

func NewTrainingWorker(log *slog.Logger, trainer contract.Trainer) *TrainingWorker {
	return &TrainingWorker{log: log, trainer: trainer}
}

// Run returns nil once the pipeline is trained, by this worker or earlier.
// A pass running elsewhere may still fail, so it is returned like any other
// failure and the supervisor retries.
func (w *TrainingWorker) Run(ctx context.Context) error {
	err := w.trainer.Train(ctx)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errors.ErrAlreadyTrained):
		w.log.Debug("Training skipped", "reason", err)
		return nil
	default:
		return err
	}
}
