package extract

import (
	"context"
)

type MockLLMClient struct {
	Response   string
	Err        error
	LastSystem string
	LastPrompt string
	Calls      int
}

func (m *MockLLMClient) Generate(ctx context.Context, system string, prompt string) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
