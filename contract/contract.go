//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-bot/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Trainer runs the single training pass of a pipeline.
type Trainer interface {
	Train(ctx context.Context) error
}

// IntentClassifier turns an utterance into a resolved intent.
// Classify rejects calls made before Ready is closed.
type IntentClassifier interface {
	Ready() <-chan struct{}
	Classify(ctx context.Context, utterance string) (domain.Resolution, []string, error)
}

// ReplySelector picks one reply for a resolved intent.
type ReplySelector interface {
	Select(intent domain.Intent) string
}

// RandomSource is satisfied by *rand.Rand from math/rand/v2.
type RandomSource interface {
	IntN(n int) int
}
