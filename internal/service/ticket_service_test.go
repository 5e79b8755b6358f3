package service_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	chainMocks "ticketera/internal/chain/mocks"
	"ticketera/internal/chain/contract"
	"ticketera/internal/model"
	repoMocks "ticketera/internal/repository/mocks"
	"ticketera/internal/service"
	apperrors "ticketera/pkg/app_errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTicketFixture() (*repoMocks.TicketRepositoryMock, *chainMocks.NodeMock, *chainMocks.ManagerMock, service.TicketService) {
	ticketRepo := repoMocks.NewTicketRepositoryMock()
	node := chainMocks.NewNodeMock()
	manager := chainMocks.NewManagerMock()
	svc := service.NewTicketService(ticketRepo, node, manager, testMetadataBase)
	return ticketRepo, node, manager, svc
}

func TestTicketService_OwnerOf(t *testing.T) {
	ctx := context.Background()
	holder := common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")

	t.Run("Success", func(t *testing.T) {
		_, _, manager, svc := newTicketFixture()

		manager.On("OwnerOf", mock.Anything, big.NewInt(42)).Return(holder, nil).Once()

		owner, err := svc.OwnerOf(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, holder.Hex(), owner)
		manager.AssertExpectations(t)
	})

	t.Run("Failed - nonexistent token reverts", func(t *testing.T) {
		_, _, manager, svc := newTicketFixture()

		manager.On("OwnerOf", mock.Anything, big.NewInt(999)).
			Return(common.Address{}, assert.AnError).Once()

		owner, err := svc.OwnerOf(ctx, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		assert.Empty(t, owner)
		manager.AssertExpectations(t)
	})
}

func TestTicketService_History(t *testing.T) {
	ctx := context.Background()
	contractAddr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	alice := common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	bob := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	transferLog := func(from, to common.Address, tokenID int64, block uint64) types.Log {
		return types.Log{
			Topics: []common.Hash{
				contract.TransferTopic(),
				common.BytesToHash(from.Bytes()),
				common.BytesToHash(to.Bytes()),
				common.BigToHash(big.NewInt(tokenID)),
			},
			BlockNumber: block,
		}
	}

	t.Run("Success - mint then resale", func(t *testing.T) {
		_, node, manager, svc := newTicketFixture()

		manager.On("Address").Return(contractAddr)
		node.On("FilterTransfers", ctx, contractAddr, big.NewInt(42), uint64(0)).Return([]types.Log{
			transferLog(common.Address{}, alice, 42, 10),
			transferLog(alice, bob, 42, 25),
		}, nil).Once()

		entries, err := svc.History(ctx, 42)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, common.Address{}.Hex(), entries[0].From)
		assert.Equal(t, alice.Hex(), entries[0].To)
		assert.Equal(t, uint64(10), entries[0].BlockNumber)
		assert.Equal(t, bob.Hex(), entries[1].To)
		node.AssertExpectations(t)
	})

	t.Run("Failed - no transfers means unknown token", func(t *testing.T) {
		_, node, manager, svc := newTicketFixture()

		manager.On("Address").Return(contractAddr)
		node.On("FilterTransfers", ctx, contractAddr, big.NewInt(999), uint64(0)).
			Return([]types.Log{}, nil).Once()

		entries, err := svc.History(ctx, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		assert.Nil(t, entries)
	})
}

func TestTicketService_MyTickets(t *testing.T) {
	ctx := context.Background()
	wallet := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	owner := common.HexToAddress(wallet)
	buyer := &model.User{ID: 2, Role: model.RoleBuyer, WalletAddress: &wallet}

	t.Run("Success - mirror rows joined", func(t *testing.T) {
		ticketRepo, _, manager, svc := newTicketFixture()

		manager.On("BalanceOf", mock.Anything, owner).Return(big.NewInt(2), nil).Once()
		manager.On("TokenOfOwnerByIndex", mock.Anything, owner, big.NewInt(0)).Return(big.NewInt(42), nil).Once()
		manager.On("TokenOfOwnerByIndex", mock.Anything, owner, big.NewInt(1)).Return(big.NewInt(77), nil).Once()

		// Token 77 was acquired off-platform; only 42 has a mirror row.
		mirrored := &model.Ticket{TokenID: 42, EventID: 7, Event: &model.Event{ID: 7, Name: "Summer Fest"}}
		ticketRepo.On("ListByWallet", ctx, owner.Hex()).Return([]*model.Ticket{mirrored}, nil).Once()

		tickets, err := svc.MyTickets(ctx, buyer)

		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, "Summer Fest", tickets[0].Event.Name)
		assert.Equal(t, int64(77), tickets[1].TokenID)
		assert.Nil(t, tickets[1].Event)
		ticketRepo.AssertExpectations(t)
		manager.AssertExpectations(t)
	})

	t.Run("Success - empty wallet", func(t *testing.T) {
		ticketRepo, _, manager, svc := newTicketFixture()

		manager.On("BalanceOf", mock.Anything, owner).Return(big.NewInt(0), nil).Once()

		tickets, err := svc.MyTickets(ctx, buyer)

		require.NoError(t, err)
		assert.Empty(t, tickets)
		ticketRepo.AssertNotCalled(t, "ListByWallet")
	})

	t.Run("Failed - no wallet registered", func(t *testing.T) {
		_, _, manager, svc := newTicketFixture()

		noWallet := &model.User{ID: 3, Role: model.RoleBuyer}

		tickets, err := svc.MyTickets(ctx, noWallet)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMissingWallet)
		assert.Nil(t, tickets)
		manager.AssertNotCalled(t, "BalanceOf")
	})

	t.Run("Failed - node unreachable", func(t *testing.T) {
		_, _, manager, svc := newTicketFixture()

		manager.On("BalanceOf", mock.Anything, owner).Return(nil, assert.AnError).Once()

		tickets, err := svc.MyTickets(ctx, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrChainUnavailable)
		assert.Nil(t, tickets)
	})
}

func TestTicketService_Metadata(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ticketRepo, _, _, svc := newTicketFixture()

		description := "An open-air concert"
		category := "music"
		ticket := &model.Ticket{
			TokenID: 42,
			EventID: 7,
			Event: &model.Event{
				ID:          7,
				Name:        "Summer Fest",
				Description: &description,
				Date:        time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC),
				Location:    "Riverside Park",
				Price:       49.9,
				Category:    &category,
			},
		}
		ticketRepo.On("FindByTokenIDWithEvent", ctx, int64(42)).Return(ticket, nil).Once()

		meta, err := svc.Metadata(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, "Summer Fest", meta.Name)
		assert.Equal(t, "An open-air concert", meta.Description)
		assert.Equal(t, testMetadataBase+"/static/events/7.png", meta.Image)
		require.Len(t, meta.Attributes, 4)
		assert.Equal(t, model.MetadataAttribute{TraitType: "Location", Value: "Riverside Park"}, meta.Attributes[0])
		assert.Equal(t, model.MetadataAttribute{TraitType: "Date", Value: "2026-07-01T20:00:00Z"}, meta.Attributes[1])
		assert.Equal(t, model.MetadataAttribute{TraitType: "Price", Value: "49.90"}, meta.Attributes[2])
		assert.Equal(t, model.MetadataAttribute{TraitType: "Category", Value: "music"}, meta.Attributes[3])
	})

	t.Run("Success - no category attribute when uncategorized", func(t *testing.T) {
		ticketRepo, _, _, svc := newTicketFixture()

		ticket := &model.Ticket{
			TokenID: 42,
			EventID: 7,
			Event: &model.Event{
				ID:       7,
				Name:     "Summer Fest",
				Date:     time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC),
				Location: "Riverside Park",
			},
		}
		ticketRepo.On("FindByTokenIDWithEvent", ctx, int64(42)).Return(ticket, nil).Once()

		meta, err := svc.Metadata(ctx, 42)

		require.NoError(t, err)
		assert.Empty(t, meta.Description)
		assert.Len(t, meta.Attributes, 3)
	})

	t.Run("Failed - unknown token", func(t *testing.T) {
		ticketRepo, _, _, svc := newTicketFixture()

		ticketRepo.On("FindByTokenIDWithEvent", ctx, int64(999)).
			Return(nil, apperrors.ErrTicketNotFound).Once()

		meta, err := svc.Metadata(ctx, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		assert.Nil(t, meta)
	})
}

func TestTicketService_SalesByCategory(t *testing.T) {
	ctx := context.Background()
	organizer := &model.User{ID: 1, Role: model.RoleOrganizer}
	buyer := &model.User{ID: 2, Role: model.RoleBuyer}

	t.Run("Success", func(t *testing.T) {
		ticketRepo, _, _, svc := newTicketFixture()

		rows := []*model.CategorySales{
			{Category: "music", TicketsSold: 12},
			{Category: "sports", TicketsSold: 4},
		}
		ticketRepo.On("SalesByCategory", ctx).Return(rows, nil).Once()

		sales, err := svc.SalesByCategory(ctx, organizer)

		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, "music", sales[0].Category)
		assert.Equal(t, 12, sales[0].TicketsSold)
	})

	t.Run("Failed - buyers cannot read analytics", func(t *testing.T) {
		ticketRepo, _, _, svc := newTicketFixture()

		sales, err := svc.SalesByCategory(ctx, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, sales)
		ticketRepo.AssertNotCalled(t, "SalesByCategory")
	})
}
