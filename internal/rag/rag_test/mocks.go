package rag_test

import (
	"context"
	"sync"

	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt, opts)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) Model() string { return "mock-llm" }

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// MockEncoder implements embedding.Encoder. The default gives every text a vector built from
// its length so that similar texts still differ.
type MockEncoder struct {
	OnEncode func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnEncode != nil {
		return m.OnEncode(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{1, float32(len(t))}
	}
	return out, nil
}

func (m *MockEncoder) Model() string { return "mock-encoder" }

// MockDenseStore implements vectorDB.DenseStore
type MockDenseStore struct {
	OnReplace func(ctx context.Context, docId string, sentences []string, vectors [][]float32) error
	OnSearch  func(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error)
}

func (m *MockDenseStore) ReplaceDocument(ctx context.Context, docId string, sentences []string, vectors [][]float32) error {
	if m.OnReplace != nil {
		return m.OnReplace(ctx, docId, sentences, vectors)
	}
	return nil
}

func (m *MockDenseStore) Search(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, docId, vector, k)
	}
	return []documentModel.Hit{}, nil
}
