package services

import "fmt"

// ParseErrorKind classifies why a model reply could not be turned into a grade.
type ParseErrorKind string

const (
	KindMalformedJSON    ParseErrorKind = "malformed_json"
	KindBadFeedbackShape ParseErrorKind = "bad_feedback_shape"
)

// ParseError is returned when the assistant's text does not have the grading shape,
// so callers can tell "the model answered badly" from "the model was unreachable".
type ParseError struct {
	Kind    ParseErrorKind
	Detail  string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to parse grading response: %s: %s: %v", e.Kind, e.Detail, e.Wrapped)
	}
	return fmt.Sprintf("failed to parse grading response: %s: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// UpstreamError wraps any failure of the chat-completion call. Its message is the
// underlying error's text unchanged.
type UpstreamError struct {
	Wrapped error
}

func (e *UpstreamError) Error() string {
	return e.Wrapped.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Wrapped
}
