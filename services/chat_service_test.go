package services

import (
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func readyChannel() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func TestChatService_Converse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	classifier := mocks.NewMockIntentClassifier(ctrl)
	selector := mocks.NewMockReplySelector(ctrl)
	svc := NewChatService(slog.Default(), classifier, selector)

	t.Run("should reply with the resolved intent", func(t *testing.T) {
		req := require.New(t)
		resolution := domain.Resolution{Intent: "greeting", Predicted: "greeting", Index: 0, Confidence: 0.87}

		classifier.EXPECT().Ready().Return(readyChannel()).Times(1)
		classifier.EXPECT().Classify(gomock.Any(), "hello").Return(resolution, []string{"hello"}, nil).Times(1)
		selector.EXPECT().Select(domain.Intent("greeting")).Return("Hi!").Times(1)

		turn, err := svc.Converse(context.Background(), "hello")

		req.NoError(err)
		req.Equal("Hi!", turn.Reply)
		req.Equal(domain.Intent("greeting"), turn.Intent)
		req.Equal(0.87, turn.Confidence)
		req.Equal([]string{"hello"}, turn.Tokens)
		req.Equal("hello", turn.Utterance)
		req.NotZero(turn.ID)
	})

	t.Run("should fall back to unknown when classification fails", func(t *testing.T) {
		req := require.New(t)

		classifier.EXPECT().Ready().Return(readyChannel()).Times(1)
		classifier.EXPECT().Classify(gomock.Any(), "boom").
			Return(domain.Resolution{}, nil, errors.ErrDimensionMismatch).Times(1)
		selector.EXPECT().Select(domain.UnknownIntent).Return("Sorry?").Times(1)

		reply, err := svc.Chat(context.Background(), "boom")

		req.NoError(err)
		req.Equal("Sorry?", reply)
	})

	t.Run("should give up when the context ends before training", func(t *testing.T) {
		req := require.New(t)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		classifier.EXPECT().Ready().Return((<-chan struct{})(make(chan struct{}))).Times(1)
		classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Times(0)
		selector.EXPECT().Select(gomock.Any()).Times(0)

		reply, err := svc.Chat(ctx, "hello")

		req.ErrorIs(err, errors.ErrNotReady)
		req.ErrorIs(err, context.DeadlineExceeded)
		req.Empty(reply)
	})

	t.Run("should wait for training to complete", func(t *testing.T) {
		req := require.New(t)
		ready := make(chan struct{})
		time.AfterFunc(20*time.Millisecond, func() { close(ready) })

		classifier.EXPECT().Ready().Return((<-chan struct{})(ready)).Times(1)
		classifier.EXPECT().Classify(gomock.Any(), "bye").
			Return(domain.Resolution{Intent: "farewell", Predicted: "farewell", Index: 1, Confidence: 0.7}, []string{"bye"}, nil).
			Times(1)
		selector.EXPECT().Select(domain.Intent("farewell")).Return("Bye!").Times(1)

		reply, err := svc.Chat(context.Background(), "bye")

		req.NoError(err)
		req.Equal("Bye!", reply)
	})
}

func TestDetectLanguage(t *testing.T) {
	req := require.New(t)
	lang, confidence := detectLanguage("   ")
	req.Empty(lang)
	req.Zero(confidence)

	lang, confidence = detectLanguage("Bonjour, je voudrais savoir quel temps il fera demain matin à Paris")
	req.Equal("fr", lang)
	req.Greater(confidence, 0.0)
}
