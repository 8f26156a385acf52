package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Answerer responds to questions over a run result. It is implemented by
// responder.Responder.
type Answerer interface {
	Answer(ctx context.Context, question string, result *domain.RunResult) string
}

// ChatHandler handles conversational questions about analyzed terms.
type ChatHandler struct {
	service  AnalysisService
	answerer Answerer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service AnalysisService, answerer Answerer) *ChatHandler {
	return &ChatHandler{service: service, answerer: answerer}
}

// ChatInput is the request body for the chat endpoint.
type ChatInput struct {
	Body struct {
		Term     string `json:"term" minLength:"1" doc:"Previously analyzed search term" example:"mechanical keyboard"`
		Question string `json:"question" minLength:"1" doc:"Question about the analyzed market" example:"What price should I target for a quick sale?"`
	}
}

// ChatOutput is the response body for the chat endpoint.
type ChatOutput struct {
	Body struct {
		Answer string `json:"answer" doc:"Assistant answer grounded in the latest analysis"`
		RunID  string `json:"run_id,omitempty" doc:"Run the answer is based on"`
	}
}

// Chat answers a question against the latest snapshot for a term. An
// unanalyzed term gets the fixed guidance message rather than an error.
func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	result, _ := h.service.Latest(input.Body.Term)

	out := &ChatOutput{}
	out.Body.Answer = h.answerer.Answer(ctx, input.Body.Question, result)
	if result != nil {
		out.Body.RunID = result.RunID
	}
	return out, nil
}

// RegisterChatRoutes registers chat endpoints with the Huma API.
func RegisterChatRoutes(api huma.API, h *ChatHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/api/v1/chat",
		Summary:     "Ask a question about an analyzed market",
		Description: "Answers questions using the latest completed analysis for the given term.",
		Tags:        []string{"chat"},
	}, h.Chat)
}
