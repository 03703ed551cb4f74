package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_CompleteOrdersMessages(t *testing.T) {
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(completionBody("I'm listening.")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 0)
	gateway := NewGateway(NewClient(cfg, logger.NewNop()), cfg, logger.NewNop())

	history := []models.ChatMessage{
		{UserID: 1, Role: models.RoleUser, Content: "I slept badly"},
		{UserID: 1, Role: models.RoleAssistant, Content: "That sounds rough"},
		{UserID: 1, Role: models.RoleUser, Content: "Yeah"},
	}

	reply := gateway.Complete(context.Background(), "system header", history)

	assert.Equal(t, "I'm listening.", reply)
	require.Len(t, gotReq.Messages, 4)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "system header", gotReq.Messages[0].Content)
	assert.Equal(t, "I slept badly", gotReq.Messages[1].Content)
	assert.Equal(t, "Yeah", gotReq.Messages[3].Content)
	assert.Equal(t, "test-chat", gotReq.Model)
	assert.Equal(t, chatMaxTokens, gotReq.MaxTokens)
}

func TestGateway_CompleteFallbackOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 0)
	gateway := NewGateway(NewClient(cfg, logger.NewNop()), cfg, logger.NewNop())

	reply := gateway.Complete(context.Background(), "header", nil)

	assert.Equal(t, ChatFallback, reply)
}

func TestGateway_CompleteFallbackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	cfg := testConfig(srv.URL, 0)
	gateway := NewGateway(NewClient(cfg, logger.NewNop()), cfg, logger.NewNop())

	reply := gateway.Complete(context.Background(), "header", nil)

	assert.Equal(t, ChatFallback, reply)
}

func TestGateway_SummarizeMoodTrend(t *testing.T) {
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(completionBody("You're trending up!")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 0)
	gateway := NewGateway(NewClient(cfg, logger.NewNop()), cfg, logger.NewNop())

	logs := []models.MoodLog{
		{UserID: 1, MoodLevel: 2, Notes: "long day"},
		{UserID: 1, MoodLevel: 4, Notes: "went for a walk"},
	}

	insight := gateway.SummarizeMoodTrend(context.Background(), logs)

	assert.Equal(t, "You're trending up!", insight)
	assert.Equal(t, "test-insight", gotReq.Model)
	assert.Equal(t, insightMaxTokens, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[1].Content, "Mood: 2/5, Note: long day")
	assert.Contains(t, gotReq.Messages[1].Content, "Mood: 4/5, Note: went for a walk")
}

func TestGateway_SummarizeMoodTrendFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 0)
	gateway := NewGateway(NewClient(cfg, logger.NewNop()), cfg, logger.NewNop())

	insight := gateway.SummarizeMoodTrend(context.Background(), nil)

	assert.Equal(t, InsightFallback, insight)
}
