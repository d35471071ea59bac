package models

// Answer is one part of a student's submission. Type is opaque ("text" in practice).
type Answer struct {
	Data string `json:"data" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// GradingRequest is the body of POST /auto-grade. Every key must be present.
// The pointer fields only need to be non-null, so an empty
// teachers_instructions or a false use_course_knowledge_base is accepted.
// AssignmentID, KnowledgeCollectionID and UseCourseKnowledgeBase are accepted
// for forward compatibility and are not interpreted by the grader.
type GradingRequest struct {
	AssignmentID           *string  `json:"assignment_id" binding:"required"`
	Question               string   `json:"question" binding:"required"`
	Answers                []Answer `json:"answers" binding:"required,min=1,dive"`
	TeachersInstructions   *string  `json:"teachers_instructions" binding:"required"`
	KnowledgeCollectionID  *string  `json:"knowledge_collection_id" binding:"required"`
	UseCourseKnowledgeBase *bool    `json:"use_course_knowledge_base" binding:"required"`
}

// Assignment returns the assignment id, or "" when unset.
func (r GradingRequest) Assignment() string {
	if r.AssignmentID == nil {
		return ""
	}
	return *r.AssignmentID
}

// Instructions returns the teacher's instructions, or "" when unset.
func (r GradingRequest) Instructions() string {
	if r.TeachersInstructions == nil {
		return ""
	}
	return *r.TeachersInstructions
}

// ConversationTurn is one entry of a chatbot conversation.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatBotRequest is the body of POST /chatbot. Only the last turn's content is used.
type ChatBotRequest struct {
	Collections  []string           `json:"collections"`
	Conversation []ConversationTurn `json:"conversation" binding:"required,min=1"`
}

// LastContent returns the content of the final conversation turn.
func (r ChatBotRequest) LastContent() string {
	if len(r.Conversation) == 0 {
		return ""
	}
	return r.Conversation[len(r.Conversation)-1].Content
}
