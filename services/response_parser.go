package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/enfluent/autograde/models"
)

// NoChatbotContent is returned to chatbot callers when the provider sent no message.
const NoChatbotContent = "No response content available"

// Placeholders substituted for feedback keys the model left out.
const (
	NoReason       = "No reason provided."
	NoImprovement  = "No improvement suggestions provided."
	NoSampleAnswer = "No sample answer provided."
)

// GradingCore is the validated content of a grading reply before normalization.
type GradingCore struct {
	Band      float64
	Feedback  map[string]json.RawMessage
	Citations []json.RawMessage
}

// FeedbackText returns feedback[key] as text, or placeholder when the key is
// missing or null. String arrays are joined line by line; other values keep
// their JSON form.
func (g *GradingCore) FeedbackText(key, placeholder string) string {
	raw, ok := g.Feedback[key]
	if !ok || isNull(raw) {
		return placeholder
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n")
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// FeedbackResponse fills in the three response keys, substituting placeholders.
func (g *GradingCore) FeedbackResponse() models.Feedback {
	return models.Feedback{
		Reason:       g.FeedbackText("reason", NoReason),
		Improvement:  g.FeedbackText("improvement", NoImprovement),
		SampleAnswer: g.FeedbackText("sample_answer", NoSampleAnswer),
	}
}

// ParseGrading turns the assistant's text into a GradingCore. The text should
// be a bare JSON object; code fences and surrounding prose are tolerated by
// falling back to the span between the first '{' and the last '}'.
func ParseGrading(text string) (*GradingCore, error) {
	doc, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	rawFeedback, ok := doc["feedback"]
	if !ok || isNull(rawFeedback) {
		return nil, &ParseError{Kind: KindBadFeedbackShape, Detail: "feedback is missing"}
	}
	var feedback map[string]json.RawMessage
	if err := json.Unmarshal(rawFeedback, &feedback); err != nil {
		return nil, &ParseError{Kind: KindBadFeedbackShape, Detail: "feedback is not an object"}
	}

	return &GradingCore{
		Band:      coerceBand(doc["result"]),
		Feedback:  feedback,
		Citations: citations(doc["resource_citations"]),
	}, nil
}

// ParseChatbot returns the assistant's content, or NoChatbotContent when absent.
func ParseChatbot(msg *models.ChatMessage) string {
	if msg == nil {
		return NoChatbotContent
	}
	return msg.Content
}

func decodeObject(text string) (map[string]json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if !json.Valid([]byte(text)) {
		span := extractJSON(text)
		if span == "" {
			return nil, &ParseError{Kind: KindMalformedJSON, Detail: "no JSON object found in model reply"}
		}
		text = span
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Kind: KindMalformedJSON, Detail: "model reply is not a JSON object", Wrapped: err}
	}
	if doc == nil {
		return nil, &ParseError{Kind: KindMalformedJSON, Detail: "model reply is null"}
	}
	return doc, nil
}

// extractJSON strips markdown code fences and returns the text between the
// first '{' and the last '}', or "" if there is no such span.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// coerceBand reads the band score. Missing, non-numeric and non-finite values are 0.
func coerceBand(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finiteOrZero(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finiteOrZero(f)
		}
	}
	return 0
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// citations echoes resource_citations element by element. A missing or null
// value yields an empty list; a non-array value becomes a single element.
func citations(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 || isNull(raw) {
		return []json.RawMessage{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []json.RawMessage{raw}
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
