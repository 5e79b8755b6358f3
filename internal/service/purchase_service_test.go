package service_test

import (
	"context"
	"math/big"
	"testing"

	cacheMocks "ticketera/internal/cache/mocks"
	chainMocks "ticketera/internal/chain/mocks"
	"ticketera/internal/chain/contract"
	"ticketera/internal/model"
	repoMocks "ticketera/internal/repository/mocks"
	"ticketera/internal/service"
	apperrors "ticketera/pkg/app_errors"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMetadataBase = "http://localhost:8080"

type purchaseFixture struct {
	pool       *repoMocks.TxBeginnerMock
	eventRepo  *repoMocks.EventRepositoryMock
	ticketRepo *repoMocks.TicketRepositoryMock
	inventory  *cacheMocks.EventInventoryMock
	node       *chainMocks.NodeMock
	manager    *chainMocks.ManagerMock
	service    service.PurchaseService
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		pool:       repoMocks.NewTxBeginnerMock(),
		eventRepo:  repoMocks.NewEventRepositoryMock(),
		ticketRepo: repoMocks.NewTicketRepositoryMock(),
		inventory:  cacheMocks.NewEventInventoryMock(),
		node:       chainMocks.NewNodeMock(),
		manager:    chainMocks.NewManagerMock(),
	}
	f.service = service.NewPurchaseService(
		f.pool, f.eventRepo, f.ticketRepo, f.inventory, f.node, f.manager, testMetadataBase,
	)
	return f
}

// mintLog builds a Transfer log for a fresh mint of tokenID to the given wallet.
func mintLog(to common.Address, tokenID int64) *types.Log {
	return &types.Log{
		Topics: []common.Hash{
			contract.TransferTopic(),
			common.Hash{},
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
	}
}

func TestPurchaseService_Purchase(t *testing.T) {
	ctx := context.Background()
	wallet := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	buyer := &model.User{ID: 2, Role: model.RoleBuyer, WalletAddress: &wallet}
	organizer := &model.User{ID: 1, Role: model.RoleOrganizer}
	event := &model.Event{ID: 7, Name: "Summer Fest", RemainingTickets: 3}

	t.Run("Success", func(t *testing.T) {
		f := newPurchaseFixture()

		mintTx := types.NewTx(&types.LegacyTx{Nonce: 1})
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{mintLog(common.HexToAddress(wallet), 42)},
		}
		dbTx := repoMocks.NewTxMock()

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(true, nil).Once()
		f.node.On("TransactOpts", ctx).Return(&bind.TransactOpts{}, nil).Once()
		f.manager.On("SafeMint", mock.Anything, common.HexToAddress(wallet), testMetadataBase+"/metadata/events/7").
			Return(mintTx, nil).Once()
		f.node.On("WaitForReceipt", ctx, mintTx).Return(receipt, nil).Once()
		f.pool.On("BeginTx", ctx, pgx.TxOptions{}).Return(dbTx, nil).Once()
		f.eventRepo.On("DecrementRemaining", ctx, dbTx, 7).Return(nil).Once()
		f.ticketRepo.On("Insert", ctx, dbTx, mock.MatchedBy(func(tk *model.Ticket) bool {
			return tk.TokenID == 42 && tk.EventID == 7 &&
				tk.OwnerWalletAddress == common.HexToAddress(wallet).Hex()
		})).Return(&model.Ticket{ID: 1, TokenID: 42, EventID: 7}, nil).Once()
		dbTx.On("Commit", ctx).Return(nil).Once()
		dbTx.On("Rollback", ctx).Return(pgx.ErrTxClosed).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.NoError(t, err)
		assert.Equal(t, mintTx.Hash().Hex(), result.TxHash)
		assert.Equal(t, int64(42), result.TokenID)
		assert.Equal(t, testMetadataBase+"/metadata/events/7", result.TokenURI)
		f.eventRepo.AssertExpectations(t)
		f.ticketRepo.AssertExpectations(t)
		f.inventory.AssertExpectations(t)
		f.node.AssertExpectations(t)
		f.manager.AssertExpectations(t)
		dbTx.AssertExpectations(t)
		f.inventory.AssertNotCalled(t, "Rollback")
	})

	t.Run("Failed - organizer cannot buy", func(t *testing.T) {
		f := newPurchaseFixture()

		result, err := f.service.Purchase(ctx, 7, organizer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, result)
		f.eventRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("Failed - sold out before reservation", func(t *testing.T) {
		f := newPurchaseFixture()

		soldOut := &model.Event{ID: 7, RemainingTickets: 0}
		f.eventRepo.On("FindByID", ctx, 7).Return(soldOut, nil).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrSoldOut)
		assert.Nil(t, result)
		f.inventory.AssertNotCalled(t, "Reserve")
	})

	t.Run("Failed - no wallet registered", func(t *testing.T) {
		f := newPurchaseFixture()

		noWallet := &model.User{ID: 3, Role: model.RoleBuyer}
		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()

		result, err := f.service.Purchase(ctx, 7, noWallet)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMissingWallet)
		assert.Nil(t, result)
		f.node.AssertNotCalled(t, "TransactOpts")
	})

	t.Run("Failed - reservation reports sold out", func(t *testing.T) {
		f := newPurchaseFixture()

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(false, apperrors.ErrSoldOut).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrSoldOut)
		assert.Nil(t, result)
		f.node.AssertNotCalled(t, "TransactOpts")
	})

	t.Run("Failed - mint submission error releases reservation", func(t *testing.T) {
		f := newPurchaseFixture()

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(true, nil).Once()
		f.node.On("TransactOpts", ctx).Return(&bind.TransactOpts{}, nil).Once()
		f.manager.On("SafeMint", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError).Once()
		f.inventory.On("Rollback", mock.Anything, 7).Return(nil).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrChainUnavailable)
		assert.Nil(t, result)
		f.inventory.AssertExpectations(t)
		f.pool.AssertNotCalled(t, "BeginTx")
	})

	t.Run("Failed - confirmation timeout releases reservation", func(t *testing.T) {
		f := newPurchaseFixture()

		mintTx := types.NewTx(&types.LegacyTx{Nonce: 2})

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(true, nil).Once()
		f.node.On("TransactOpts", ctx).Return(&bind.TransactOpts{}, nil).Once()
		f.manager.On("SafeMint", mock.Anything, mock.Anything, mock.Anything).
			Return(mintTx, nil).Once()
		f.node.On("WaitForReceipt", ctx, mintTx).Return(nil, apperrors.ErrChainTimeout).Once()
		f.inventory.On("Rollback", mock.Anything, 7).Return(nil).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrChainTimeout)
		assert.Nil(t, result)
		f.inventory.AssertExpectations(t)
		f.pool.AssertNotCalled(t, "BeginTx")
	})

	t.Run("Failed - receipt without mint event", func(t *testing.T) {
		f := newPurchaseFixture()

		mintTx := types.NewTx(&types.LegacyTx{Nonce: 3})
		receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(true, nil).Once()
		f.node.On("TransactOpts", ctx).Return(&bind.TransactOpts{}, nil).Once()
		f.manager.On("SafeMint", mock.Anything, mock.Anything, mock.Anything).
			Return(mintTx, nil).Once()
		f.node.On("WaitForReceipt", ctx, mintTx).Return(receipt, nil).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMintEventMissing)
		assert.Nil(t, result)
		// The transaction confirmed, so a token may exist; the reservation
		// stays held until the reconcile worker mirrors it.
		f.inventory.AssertNotCalled(t, "Rollback", mock.Anything, 7)
	})

	t.Run("Failed - cold cache falls back to database guard", func(t *testing.T) {
		f := newPurchaseFixture()

		mintTx := types.NewTx(&types.LegacyTx{Nonce: 4})
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{mintLog(common.HexToAddress(wallet), 43)},
		}
		dbTx := repoMocks.NewTxMock()

		f.eventRepo.On("FindByID", ctx, 7).Return(event, nil).Once()
		f.inventory.On("Reserve", ctx, 7).Return(false, assert.AnError).Once()
		f.node.On("TransactOpts", ctx).Return(&bind.TransactOpts{}, nil).Once()
		f.manager.On("SafeMint", mock.Anything, mock.Anything, mock.Anything).
			Return(mintTx, nil).Once()
		f.node.On("WaitForReceipt", ctx, mintTx).Return(receipt, nil).Once()
		f.pool.On("BeginTx", ctx, pgx.TxOptions{}).Return(dbTx, nil).Once()
		f.eventRepo.On("DecrementRemaining", ctx, dbTx, 7).Return(apperrors.ErrSoldOut).Once()
		dbTx.On("Rollback", ctx).Return(nil).Once()

		result, err := f.service.Purchase(ctx, 7, buyer)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrSoldOut)
		assert.Nil(t, result)
		f.ticketRepo.AssertNotCalled(t, "Insert")
		// Reservation was never held, nothing to roll back.
		f.inventory.AssertNotCalled(t, "Rollback")
		dbTx.AssertExpectations(t)
	})
}
