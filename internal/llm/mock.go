package llm

import "context"

// MockClient permite tests sin llamar al proxy de chat real.
type MockClient struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockClient) Chat(ctx context.Context, messages []Message, systemPrompt string, maxTokens int) (string, error) {
	m.Calls++
	return m.Response, m.Err
}
