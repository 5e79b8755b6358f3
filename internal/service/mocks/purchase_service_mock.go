package mocks

import (
	"context"

	"ticketera/internal/model"

	"github.com/stretchr/testify/mock"
)

type PurchaseServiceMock struct {
	mock.Mock
}

func NewPurchaseServiceMock() *PurchaseServiceMock {
	return &PurchaseServiceMock{}
}

func (m *PurchaseServiceMock) Purchase(ctx context.Context, eventID int, actor *model.User) (*model.PurchaseResult, error) {
	args := m.Called(ctx, eventID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseResult), args.Error(1)
}
