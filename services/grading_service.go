package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/enfluent/autograde/models"
)

// GradingService scores a student's written answer with the chat model.
type GradingService interface {
	Grade(ctx context.Context, req models.GradingRequest) (*models.GradingResponse, error)
}

type gradingServiceImpl struct {
	completer ChatCompleter
	prompts   *PromptBuilder
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGradingService wires the grading pipeline. timeout bounds each remote call;
// zero disables it.
func NewGradingService(completer ChatCompleter, prompts *PromptBuilder, timeout time.Duration, logger *slog.Logger) GradingService {
	return &gradingServiceImpl{
		completer: completer,
		prompts:   prompts,
		timeout:   timeout,
		logger:    logger,
	}
}

// Grade runs prompt -> completion -> parse -> normalize. The first failure aborts;
// nothing is retried.
func (s *gradingServiceImpl) Grade(ctx context.Context, req models.GradingRequest) (*models.GradingResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Info("grading request accepted",
		"assignment_id", req.Assignment(),
		"answers", len(req.Answers),
	)

	messages, err := s.prompts.GradingMessages(req)
	if err != nil {
		log.Error("failed to build grading prompt", "error", err)
		return nil, err
	}

	reply, err := complete(ctx, s.completer, messages, s.timeout)
	if err != nil {
		log.Error("chat completion failed", "error", err, "assignment_id", req.Assignment())
		return nil, err
	}

	var text string
	if reply != nil {
		text = reply.Content
	}
	core, err := ParseGrading(text)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			log.Error("invalid grading reply", "kind", perr.Kind, "error", err, "response", text)
		}
		return nil, err
	}

	resp := &models.GradingResponse{
		Result:            Percentage(core.Band),
		Feedback:          core.FeedbackResponse(),
		ResourceCitations: core.Citations,
	}
	log.Info("grading reply parsed",
		"assignment_id", req.Assignment(),
		"band", core.Band,
		"result", resp.Result,
		"citations", len(resp.ResourceCitations),
	)
	return resp, nil
}

// complete calls the completer under the per-call timeout and tags failures
// as upstream errors.
func complete(ctx context.Context, completer ChatCompleter, messages []models.ChatMessage, timeout time.Duration) (*models.ChatMessage, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	reply, err := completer.Complete(ctx, messages)
	if err != nil {
		return nil, &UpstreamError{Wrapped: err}
	}
	return reply, nil
}
