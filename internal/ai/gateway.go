package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/neeva-app/neeva-backend/internal/config"
	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/models"
)

// Sampling policy. Fixed here, not user-tunable.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 1024

	insightTemperature = 0.7
	insightMaxTokens   = 200
)

// Fallback replies returned when the provider is unreachable. A raw
// technical error must never reach the person on the other end.
const (
	ChatFallback    = "I'm having a little trouble connecting right now, but I'm here for you. Can we try again in a moment?"
	InsightFallback = "Keep tracking your mood to see more insights!"
)

const insightSystemPrompt = "You are a helpful mood analyst. Provide short, warm, and actionable insights based on mood patterns."

// Gateway invokes the external model and absorbs every failure into a
// safe default reply. Provider errors surface only in the logs.
type Gateway struct {
	client       *Client
	chatModel    string
	insightModel string
	log          *logger.Logger
}

func NewGateway(client *Client, cfg config.AI, log *logger.Logger) *Gateway {
	return &Gateway{
		client:       client,
		chatModel:    cfg.ChatModel,
		insightModel: cfg.InsightModel,
		log:          log.With("service", "AIGateway"),
	}
}

// Complete sends the system header followed by the history, oldest
// first. The caller has already appended the newest user turn to
// history; the gateway does not special-case it. Fail-soft: on any
// transport, timeout or provider error the fixed fallback reply comes
// back and the cause is logged.
func (g *Gateway) Complete(ctx context.Context, systemHeader string, history []models.ChatMessage) string {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemHeader})
	for _, turn := range history {
		messages = append(messages, Message{Role: turn.Role, Content: turn.Content})
	}

	reply, err := g.client.ChatCompletion(ctx, g.chatModel, messages, chatTemperature, chatMaxTokens)
	if err != nil {
		g.log.Error("chat completion failed, returning fallback", "error", err.Error())
		return ChatFallback
	}

	return reply
}

// SummarizeMoodTrend asks the model for a brief encouraging insight over
// recent mood logs. Same fail-soft contract as Complete, different
// fixed instruction, no conversation history.
func (g *Gateway) SummarizeMoodTrend(ctx context.Context, logs []models.MoodLog) string {
	var prompt strings.Builder
	prompt.WriteString("Analyze these recent mood entries and provide a brief, encouraging insight:\n")
	for _, log := range logs {
		fmt.Fprintf(&prompt, "- Mood: %d/5, Note: %s\n", log.MoodLevel, log.Notes)
	}

	messages := []Message{
		{Role: "system", Content: insightSystemPrompt},
		{Role: "user", Content: prompt.String()},
	}

	insight, err := g.client.ChatCompletion(ctx, g.insightModel, messages, insightTemperature, insightMaxTokens)
	if err != nil {
		g.log.Error("mood insight failed, returning fallback", "error", err.Error())
		return InsightFallback
	}

	return insight
}
