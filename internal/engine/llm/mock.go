package llm

import (
	"context"
	"sync"
)

// MockGenerator is a test double for llm.Generator.
type MockGenerator struct {
	Text      string
	Err       error
	ModelName string

	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastConfig GenerationConfig
}

// Generate records the call and returns the configured text and error.
func (m *MockGenerator) Generate(_ context.Context, prompt string, cfg GenerationConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPrompt = prompt
	m.lastConfig = cfg
	return m.Text, m.Err
}

// Model returns the configured model name.
func (m *MockGenerator) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Calls returns the number of Generate calls.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent call.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastConfig returns the generation config of the most recent call.
func (m *MockGenerator) LastConfig() GenerationConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastConfig
}
