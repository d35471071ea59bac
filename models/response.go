package models

import "encoding/json"

// Feedback is always rendered with exactly these three keys.
type Feedback struct {
	Reason       string `json:"reason"`
	Improvement  string `json:"improvement"`
	SampleAnswer string `json:"sample_answer"`
}

// GradingResponse is the body returned by POST /auto-grade.
type GradingResponse struct {
	Result            float64           `json:"result"`
	Feedback          Feedback          `json:"feedback"`
	ResourceCitations []json.RawMessage `json:"resource_citations"`
}

// Reference is an advisory citation returned alongside a chatbot reply.
type Reference struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ChatBotResponse is the body returned by POST /chatbot.
type ChatBotResponse struct {
	Response   ChatMessage `json:"response"`
	References []Reference  `json:"references"`
}

// ErrorResponse is the body of every non-validation failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes one schema violation in a 422 response.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
