package mocks

import (
	"context"

	"ticketera/internal/model"

	"github.com/stretchr/testify/mock"
)

type TicketServiceMock struct {
	mock.Mock
}

func NewTicketServiceMock() *TicketServiceMock {
	return &TicketServiceMock{}
}

func (m *TicketServiceMock) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *TicketServiceMock) History(ctx context.Context, tokenID int64) ([]*model.TransferEntry, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TransferEntry), args.Error(1)
}

func (m *TicketServiceMock) MyTickets(ctx context.Context, actor *model.User) ([]*model.Ticket, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) Metadata(ctx context.Context, tokenID int64) (*model.TicketMetadata, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketMetadata), args.Error(1)
}

func (m *TicketServiceMock) SalesByCategory(ctx context.Context, actor *model.User) ([]*model.CategorySales, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CategorySales), args.Error(1)
}
