package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCommandHandler[C any] struct{ mock.Mock }

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockResultHandler[C, R any] struct{ mock.Mock }

func (m *MockResultHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	args := m.Called(ctx, cmd)
	var zero R
	if v := args.Get(0); v != nil {
		return v.(R), args.Error(1)
	}
	return zero, args.Error(1)
}
