package repository

import (
	"context"
	"fmt"
	"testing"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/config"
	"sttock-tracker/pkg/common"
	"sttock-tracker/pkg/credentials"
	"sttock-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type mapCredentials struct {
	values map[string]string
}

func (m *mapCredentials) Get(key string) (string, error) {
	value, ok := m.values[key]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", credentials.ErrNotFound, key)
	}
	return value, nil
}

func (m *mapCredentials) Set(key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *mapCredentials) Clear(key string) error {
	delete(m.values, key)
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestFetchStockNewsWithoutAPIKey(t *testing.T) {
	cfg := &config.Config{}
	repo := NewGeminiNewsRepository(cfg, testLogger(t), &mapCredentials{})

	// The key check happens before any network call.
	_, err := repo.FetchStockNews(context.Background(), "TCS")
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestResolveAPIKeyPrefersStoredCredential(t *testing.T) {
	cfg := &config.Config{}
	cfg.Gemini.APIKey = "configured"

	creds := &mapCredentials{}
	repo := &geminiNewsRepository{cfg: cfg, logger: testLogger(t), credentials: creds}
	assert.Equal(t, "configured", repo.resolveAPIKey())

	require.NoError(t, creds.Set(common.GeminiAPIKeyStorageKey, "stored"))
	assert.Equal(t, "stored", repo.resolveAPIKey())

	require.NoError(t, creds.Clear(common.GeminiAPIKeyStorageKey))
	assert.Equal(t, "configured", repo.resolveAPIKey())
}

func TestBuildStockNewsPrompt(t *testing.T) {
	prompt := BuildStockNewsPrompt("RELIANCE")
	assert.Contains(t, prompt, `"RELIANCE"`)
	assert.Contains(t, prompt, "Moneycontrol")
	assert.Contains(t, prompt, "max 2 bullets")
}

func TestParseNewsResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: "- First story\n"}, {Text: "- Second story"}},
				},
				GroundingMetadata: &genai.GroundingMetadata{
					GroundingChunks: []*genai.GroundingChunk{
						{Web: &genai.GroundingChunkWeb{Title: "Moneycontrol", URI: "http://a"}},
						{Web: &genai.GroundingChunkWeb{Title: "", URI: "http://b"}},
						{Web: nil},
					},
				},
			},
		},
	}

	result, err := parseNewsResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "- First story\n- Second story", result.Summary)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, entity.Source{Title: "Moneycontrol", URI: "http://a"}, result.Sources[0])
	assert.Equal(t, entity.Source{Title: common.FallbackSourceTitle, URI: "http://b"}, result.Sources[1])
}

func TestParseNewsResponseFallbacks(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				GroundingMetadata: &genai.GroundingMetadata{
					GroundingChunks: []*genai.GroundingChunk{
						{Web: &genai.GroundingChunkWeb{Title: "", URI: ""}},
					},
				},
			},
		},
	}

	result, err := parseNewsResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, common.FallbackSummary, result.Summary)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, common.FallbackSourceTitle, result.Sources[0].Title)
	assert.Equal(t, common.FallbackSourceURI, result.Sources[0].URI)
}

func TestParseNewsResponseWithoutCandidates(t *testing.T) {
	_, err := parseNewsResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestUniqueSourcesKeepsFirstOccurrence(t *testing.T) {
	sources := []entity.Source{
		{Title: "First", URI: "http://a"},
		{Title: "Other", URI: "http://b"},
		{Title: "Duplicate", URI: "http://a"},
	}

	unique := uniqueSources(sources)
	require.Len(t, unique, 2)
	assert.Equal(t, "First", unique[0].Title)
	assert.Equal(t, "Other", unique[1].Title)
}
