package llm

import "context"

type MockCompleter struct {
	CompleteFunc func(ctx context.Context, system, user string) (string, error)
}

func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return m.CompleteFunc(ctx, system, user)
}
