package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EventInventoryMock struct {
	mock.Mock
}

func NewEventInventoryMock() *EventInventoryMock {
	return &EventInventoryMock{}
}

func (m *EventInventoryMock) WarmUp(ctx context.Context, eventID int, remaining int) error {
	args := m.Called(ctx, eventID, remaining)
	return args.Error(0)
}

func (m *EventInventoryMock) Reserve(ctx context.Context, eventID int) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *EventInventoryMock) Rollback(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *EventInventoryMock) Cursor(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *EventInventoryMock) SetCursor(ctx context.Context, block uint64) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}
