package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejezie/Enact-Pricing/internal/api/handlers"
	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// stubService is a canned AnalysisService.
type stubService struct {
	result  *domain.RunResult
	err     error
	calls   []string
	refresh []bool
}

func (s *stubService) Analyze(_ context.Context, term string, refresh bool) (*domain.RunResult, error) {
	s.calls = append(s.calls, term)
	s.refresh = append(s.refresh, refresh)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) Latest(string) (*domain.RunResult, bool) {
	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

func analysisResult() *domain.RunResult {
	return &domain.RunResult{
		RunID:      "run-77",
		SearchTerm: "laptop",
		Records: []domain.NormalizedRecord{
			{Record: domain.Record{Title: "Dell XPS", PriceText: "£500"}, NumericPrice: 500, Priced: true},
		},
		Analysis: domain.MarketAnalysis{
			PricedCount: 1,
			Mean:        500,
			Median:      500,
		},
		Recommendations: []string{"Market Overview"},
	}
}

func TestAnalyzeHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		service    *stubService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid request returns analysis",
			body:       map[string]any{"term": "laptop"},
			service:    &stubService{result: analysisResult()},
			wantStatus: http.StatusOK,
			wantBody:   `"run_id":"run-77"`,
		},
		{
			name:       "missing term returns 422",
			body:       map[string]any{"refresh": true},
			service:    &stubService{result: analysisResult()},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "pipeline failure returns 502",
			body:       map[string]any{"term": "laptop"},
			service:    &stubService{err: errors.New("upstream timeout")},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(tt.service))

			resp := api.Post("/api/v1/analyze", tt.body)

			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAnalyzeHandler_RefreshFlag(t *testing.T) {
	t.Parallel()

	service := &stubService{result: analysisResult()}
	_, api := humatest.New(t)
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(service))

	resp := api.Post("/api/v1/analyze", map[string]any{"term": "laptop", "refresh": true})
	require.Equal(t, http.StatusOK, resp.Code)

	require.Len(t, service.refresh, 1)
	assert.True(t, service.refresh[0])
}
