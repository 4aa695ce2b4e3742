package repository

import (
	"context"
	"errors"
	"fmt"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/config"
	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/pkg/common"
	"sttock-tracker/pkg/credentials"
	"sttock-tracker/pkg/logger"

	"google.golang.org/genai"
)

// geminiNewsRepository fetches stock news through the Google Gemini API
// with the google-search grounding tool; citations come from the response
// grounding metadata.
type geminiNewsRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	credentials credentials.Provider
}

// NewGeminiNewsRepository creates a new instance of geminiNewsRepository.
// The API key is resolved per request: a user-stored credential takes
// precedence over the configured one, so a key entered at runtime is
// picked up without a restart.
func NewGeminiNewsRepository(cfg *config.Config, log *logger.Logger, creds credentials.Provider) NewsRepository {
	return &geminiNewsRepository{
		cfg:         cfg,
		logger:      log,
		credentials: creds,
	}
}

// FetchStockNews requests a two-bullet summary with sources for a symbol.
func (r *geminiNewsRepository) FetchStockNews(ctx context.Context, symbol string) (*dto.StockNewsResult, error) {
	apiKey := r.resolveAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		r.logger.Error("Failed to create Gemini client", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := BuildStockNewsPrompt(symbol)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, r.model(), contents, cfg)
	if err != nil {
		r.logger.Error("Failed to fetch stock news from Gemini API",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to fetch stock news: %w", err)
	}

	return parseNewsResponse(resp)
}

func (r *geminiNewsRepository) resolveAPIKey() string {
	if key, err := r.credentials.Get(common.GeminiAPIKeyStorageKey); err == nil {
		return key
	} else if !errors.Is(err, credentials.ErrNotFound) {
		r.logger.Warn("Failed to read stored Gemini credential", logger.ErrorField(err))
	}
	return r.cfg.Gemini.APIKey
}

func (r *geminiNewsRepository) model() string {
	if r.cfg.Gemini.Model != "" {
		return r.cfg.Gemini.Model
	}
	return "gemini-2.5-flash"
}

func parseNewsResponse(resp *genai.GenerateContentResponse) (*dto.StockNewsResult, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no candidates")
	}
	candidate := resp.Candidates[0]

	summary := ""
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			summary += part.Text
		}
	}
	if summary == "" {
		summary = common.FallbackSummary
	}

	var sources []entity.Source
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			source := entity.Source{Title: chunk.Web.Title, URI: chunk.Web.URI}
			if source.Title == "" {
				source.Title = common.FallbackSourceTitle
			}
			if source.URI == "" {
				source.URI = common.FallbackSourceURI
			}
			sources = append(sources, source)
		}
	}

	return &dto.StockNewsResult{
		Summary: summary,
		Sources: uniqueSources(sources),
	}, nil
}

// uniqueSources removes duplicate citations by URI, keeping the first
// occurrence and its order.
func uniqueSources(sources []entity.Source) []entity.Source {
	seen := make(map[string]struct{}, len(sources))
	unique := make([]entity.Source, 0, len(sources))
	for _, source := range sources {
		if _, ok := seen[source.URI]; ok {
			continue
		}
		seen[source.URI] = struct{}{}
		unique = append(unique, source)
	}
	return unique
}
