package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enfluent/autograde/config"
	"github.com/enfluent/autograde/models"
)

func TestGeminiCompleter(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		SystemInstruction struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"systemInstruction"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Great question! "},{"text":"Here is how."}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.LLM.GeminiAPIKey = "test-key"
	cfg.LLM.GeminiModel = "gemini-2.5-flash"
	cfg.LLM.Endpoint = srv.URL

	completer, err := NewGeminiCompleter(context.Background(), cfg, srv.Client())
	require.NoError(t, err)

	reply, err := completer.Complete(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: ExaminerPrompt},
		{Role: models.RoleUser, Content: "grade this"},
	})
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, "Great question! Here is how.", reply.Content)
	assert.Equal(t, models.RoleAssistant, reply.Role)

	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-2.5-flash:generateContent"), gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	assert.Equal(t, "grade this", gotBody.Contents[0].Parts[0].Text)
	require.Len(t, gotBody.SystemInstruction.Parts, 1)
	assert.Equal(t, ExaminerPrompt, gotBody.SystemInstruction.Parts[0].Text)
}

func TestGeminiCompleterNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.LLM.GeminiAPIKey = "test-key"
	cfg.LLM.GeminiModel = "gemini-2.5-flash"
	cfg.LLM.Endpoint = srv.URL

	completer, err := NewGeminiCompleter(context.Background(), cfg, srv.Client())
	require.NoError(t, err)

	reply, err := completer.Complete(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Nil(t, reply)
}
