package chat

import (
	"context"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/intent"
	"github.com/sandevgo/memobot/internal/service/memory"
	"github.com/sandevgo/memobot/pkg/log"
)

const DefaultImagePrompt = "What is this image?"

type Service struct {
	store       core.FactStore
	matcher     *intent.Matcher
	assembler   *memory.Assembler
	gateway     core.Gateway
	imagePrompt string
	locks       *userLocks
}

func NewService(
	store core.FactStore,
	matcher *intent.Matcher,
	assembler *memory.Assembler,
	gateway core.Gateway,
	imagePrompt string,
) *Service {
	if imagePrompt == "" {
		imagePrompt = DefaultImagePrompt
	}
	return &Service{
		store:       store,
		matcher:     matcher,
		assembler:   assembler,
		gateway:     gateway,
		imagePrompt: imagePrompt,
		locks:       newUserLocks(),
	}
}

// Reply answers one message and records the exchange. Turns of the same user
// are serialized; a failed generation records nothing.
func (s *Service) Reply(ctx context.Context, userID, message string) (string, error) {
	logger := log.FromCtx(ctx)

	unlock := s.locks.lock(userID)
	defer unlock()

	res, err := s.matcher.Resolve(ctx, userID, message)
	if err != nil {
		return "", fmt.Errorf("failed to resolve intent: %w", err)
	}

	reply := res.Reply
	if !res.Handled() {
		prompt, err := s.assembler.BuildContext(ctx, userID, message)
		if err != nil {
			return "", fmt.Errorf("failed to build context: %w", err)
		}

		reply, err = s.gateway.Generate(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("failed to generate reply: %w", err)
		}
	}

	entry, err := s.store.RecordTurn(ctx, userID, message, reply)
	if err != nil {
		return "", fmt.Errorf("failed to save turn: %w", err)
	}

	logger.Info().
		Str("user", userID).
		Str("disposition", string(res.Disposition)).
		Int64("turn", entry.ID).
		Msg("turn recorded")

	return reply, nil
}

// DescribeImage asks the gateway about an uploaded image. Image exchanges are
// not part of the transcript.
func (s *Service) DescribeImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", core.ErrValidation)
	}

	reply, err := s.gateway.GenerateWithImage(ctx, s.imagePrompt, image)
	if err != nil {
		return "", fmt.Errorf("failed to describe image: %w", err)
	}
	return reply, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]core.TranscriptEntry, error) {
	turns, err := s.store.AllTurns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return turns, nil
}
