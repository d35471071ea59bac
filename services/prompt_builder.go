package services

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/enfluent/autograde/models"
)

// answerSeparator sits between consecutive answers before escaping.
const answerSeparator = "\n\n"

var quotedEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeQuoted makes s safe to place between double quotes in a prompt, so a
// student cannot close the quoted span and append instructions of their own.
func EscapeQuoted(s string) string {
	return quotedEscaper.Replace(s)
}

// JoinAnswers concatenates the answer texts in submission order.
func JoinAnswers(answers []models.Answer) string {
	parts := make([]string, 0, len(answers))
	for _, a := range answers {
		parts = append(parts, a.Data)
	}
	return strings.Join(parts, answerSeparator)
}

// PromptBuilder renders the grading and tutor prompts. It holds no mutable
// state and is safe for concurrent use.
type PromptBuilder struct {
	grading prompts.PromptTemplate
	tutor   prompts.PromptTemplate
}

// NewPromptBuilder parses the grading and tutor templates.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		grading: prompts.NewPromptTemplate(gradingTemplate, []string{"question", "answers", "instructions"}),
		tutor:   prompts.NewPromptTemplate(tutorTemplate, []string{"message"}),
	}
}

// GradingMessages returns the examiner system message followed by the grading request.
func (b *PromptBuilder) GradingMessages(req models.GradingRequest) ([]models.ChatMessage, error) {
	body, err := b.grading.Format(map[string]any{
		"question":     EscapeQuoted(req.Question),
		"answers":      EscapeQuoted(JoinAnswers(req.Answers)),
		"instructions": EscapeQuoted(req.Instructions()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render grading prompt: %w", err)
	}
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: ExaminerPrompt},
		{Role: models.RoleUser, Content: body},
	}, nil
}

// TutorMessages returns the single user message for the English tutor.
func (b *PromptBuilder) TutorMessages(message string) ([]models.ChatMessage, error) {
	body, err := b.tutor.Format(map[string]any{"message": EscapeQuoted(message)})
	if err != nil {
		return nil, fmt.Errorf("failed to render tutor prompt: %w", err)
	}
	return []models.ChatMessage{{Role: models.RoleUser, Content: body}}, nil
}
