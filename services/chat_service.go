package services

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
)

type IChatService interface {
	Chat(ctx context.Context, utterance string) (string, error)
	Converse(ctx context.Context, utterance string) (domain.Turn, error)
}

// ChatService is the boundary consumed by the chat surface.
type ChatService struct {
	log        *slog.Logger
	classifier contract.IntentClassifier
	selector   contract.ReplySelector
}

func NewChatService(log *slog.Logger, classifier contract.IntentClassifier, selector contract.ReplySelector) *ChatService {
	return &ChatService{log: log, classifier: classifier, selector: selector}
}

// Chat returns the reply to utterance.
func (s *ChatService) Chat(ctx context.Context, utterance string) (string, error) {
	turn, err := s.Converse(ctx, utterance)
	if err != nil {
		return "", err
	}
	return turn.Reply, nil
}

// Converse runs one full turn. Calls made while the model is still training
// wait until it is ready; the only possible error is ctx ending first.
// Malformed, empty or unrecognized utterances resolve to the unknown reply.
func (s *ChatService) Converse(ctx context.Context, utterance string) (domain.Turn, error) {
	select {
	case <-s.classifier.Ready():
	case <-ctx.Done():
		return domain.Turn{}, fmt.Errorf("%w: %w", errors.ErrNotReady, ctx.Err())
	}

	turn := domain.NewTurn(utterance)
	resolution, tokens, err := s.classifier.Classify(ctx, utterance)
	if err != nil {
		s.log.Error("Classification failed, using fallback", "turn", turn.ID, "error", err)
		resolution = domain.Resolution{Intent: domain.UnknownIntent, Predicted: domain.UnknownIntent, Index: -1}
	}

	turn.Tokens = tokens
	turn.Intent = resolution.Intent
	turn.Confidence = resolution.Confidence
	var langConfidence float64
	turn.Language, langConfidence = detectLanguage(utterance)
	turn.Reply = s.selector.Select(resolution.Intent)

	s.log.Info("Chat turn",
		"turn", turn.ID,
		"intent", turn.Intent,
		"predicted", resolution.Predicted,
		"confidence", turn.Confidence,
		"lang", turn.Language,
		"lang_confidence", langConfidence)
	return turn, nil
}

// detectLanguage is diagnostic only, tokenization stays English.
// Chat-length input is rarely reliable, the confidence is logged instead of gating.
func detectLanguage(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391(), info.Confidence
}
