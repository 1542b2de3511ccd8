package executor

import "context"

type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, dir string, name string, args ...string) (string, error)
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return m.ExecuteFunc(ctx, "", name, args...)
}

func (m *MockExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return m.ExecuteFunc(ctx, dir, name, args...)
}
