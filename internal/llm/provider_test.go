package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &GenerationResponse{}, nil
}

func TestProviderInterface(t *testing.T) {
	var provider Provider = &MockProvider{name: "mock"}
	assert.Equal(t, "mock", provider.Name())
}

func TestMockProviderGenerate(t *testing.T) {
	callCount := 0
	mock := &MockProvider{
		name: "test",
		generateFunc: func(_ context.Context, request *GenerationRequest) (*GenerationResponse, error) {
			callCount++
			require.Equal(t, "test-model", request.Model)
			require.Equal(t, GenresSchema, request.OutputSchema)
			return &GenerationResponse{RawOutput: `{"genres":["deep house","uk garage"]}`}, nil
		},
	}

	resp, err := mock.Generate(context.Background(), &GenerationRequest{Model: "test-model", OutputSchema: GenresSchema})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)

	var out models.GenresResponse
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, []string{"deep house", "uk garage"}, out.Genres)
}

func TestGenerationResponse_Decode(t *testing.T) {
	var out models.PromptResponse

	var nilResp *GenerationResponse
	assert.True(t, errors.Is(nilResp.Decode(&out), ErrEmptyOutput))
	assert.True(t, errors.Is((&GenerationResponse{}).Decode(&out), ErrEmptyOutput))

	err := (&GenerationResponse{RawOutput: "not json"}).Decode(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse model output")

	require.NoError(t, (&GenerationResponse{RawOutput: `{"prompt":"p"}`}).Decode(&out))
	assert.Equal(t, "p", out.Prompt)
}
