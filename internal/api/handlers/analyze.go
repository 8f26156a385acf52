package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// AnalysisService runs market analyses and serves cached snapshots. It is
// implemented by pipeline.Service.
type AnalysisService interface {
	Analyze(ctx context.Context, term string, refresh bool) (*domain.RunResult, error)
	Latest(term string) (*domain.RunResult, bool)
}

// AnalyzeHandler handles analysis requests.
type AnalyzeHandler struct {
	service AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(service AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

// AnalyzeInput is the request body for the analyze endpoint.
type AnalyzeInput struct {
	Body struct {
		Term    string `json:"term" minLength:"1" doc:"Search term to analyze" example:"mechanical keyboard"`
		Refresh bool   `json:"refresh,omitempty" doc:"Force a fresh run instead of serving a cached snapshot"`
	}
}

// AnalyzeOutput is the response body for the analyze endpoint.
type AnalyzeOutput struct {
	Body domain.RunResult
}

// Analyze runs or serves a market analysis for a search term.
func (h *AnalyzeHandler) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	result, err := h.service.Analyze(ctx, input.Body.Term, input.Body.Refresh)
	if err != nil {
		return nil, huma.Error502BadGateway("analysis failed: " + err.Error())
	}

	return &AnalyzeOutput{Body: *result}, nil
}

// RegisterAnalyzeRoutes registers analysis endpoints with the Huma API.
func RegisterAnalyzeRoutes(api huma.API, h *AnalyzeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-term",
		Method:      http.MethodPost,
		Path:        "/api/v1/analyze",
		Summary:     "Analyze market prices for a search term",
		Description: "Fetches current listings, extracts prices, and returns market statistics with pricing recommendations.",
		Tags:        []string{"analysis"},
		Errors:      []int{http.StatusBadGateway},
	}, h.Analyze)
}
