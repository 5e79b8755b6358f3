package service

import (
	"context"
	"errors"
	"fmt"

	"ticketera/internal/cache"
	"ticketera/internal/chain"
	"ticketera/internal/chain/contract"
	"ticketera/internal/model"
	"ticketera/internal/repository"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PurchaseService coordinates a ticket purchase across the database and the
// chain. The two stores are never inside one transaction: if the process dies
// between mint confirmation and the local write, the chain holds a token with
// no mirror row until the reconcile worker catches up.
type PurchaseService interface {
	Purchase(ctx context.Context, eventID int, actor *model.User) (*model.PurchaseResult, error)
}

type PurchaseServiceImpl struct {
	pool            repository.TxBeginner
	eventRepo       repository.EventRepository
	ticketRepo      repository.TicketRepository
	inventory       cache.EventInventory
	node            chain.Node
	ticketManager   contract.Manager
	metadataBaseURL string
}

func NewPurchaseService(
	pool repository.TxBeginner,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	inventory cache.EventInventory,
	node chain.Node,
	ticketManager contract.Manager,
	metadataBaseURL string,
) PurchaseService {
	return &PurchaseServiceImpl{
		pool:            pool,
		eventRepo:       eventRepo,
		ticketRepo:      ticketRepo,
		inventory:       inventory,
		node:            node,
		ticketManager:   ticketManager,
		metadataBaseURL: metadataBaseURL,
	}
}

// TokenURI derives the metadata URI minted into the token from the event id.
func (s *PurchaseServiceImpl) TokenURI(eventID int) string {
	return fmt.Sprintf("%s/metadata/events/%d", s.metadataBaseURL, eventID)
}

func (s *PurchaseServiceImpl) Purchase(ctx context.Context, eventID int, actor *model.User) (*model.PurchaseResult, error) {
	if actor.Role != model.RoleBuyer {
		return nil, apperrors.ErrForbidden
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.IsSoldOut() {
		return nil, apperrors.ErrSoldOut
	}

	if !actor.HasWallet() {
		return nil, apperrors.ErrMissingWallet
	}

	purchaseID := uuid.New().String()
	log := logger.WithComponent("purchase_service").With(
		zap.String("purchase_id", purchaseID),
		zap.Int("event_id", event.ID),
		zap.Int("buyer_id", actor.ID),
	)

	// Fast-path reservation. A cold or unreachable Redis falls back to the
	// database decrement guard.
	warmed, err := s.inventory.Reserve(ctx, event.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSoldOut) {
			return nil, apperrors.ErrSoldOut
		}
		log.Warn("inventory reservation unavailable", zap.Error(err))
		warmed = false
	}
	release := func() {
		if !warmed {
			return
		}
		// Rollback must run even when the request context is gone.
		if err := s.inventory.Rollback(context.Background(), event.ID); err != nil {
			log.Error("failed to roll back reservation", zap.Error(err))
		}
	}

	tokenURI := s.TokenURI(event.ID)
	buyerWallet := common.HexToAddress(*actor.WalletAddress)

	opts, err := s.node.TransactOpts(ctx)
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	mintTx, err := s.ticketManager.SafeMint(opts, buyerWallet, tokenURI)
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	log = log.With(zap.String("tx_hash", mintTx.Hash().Hex()))
	log.Info("mint transaction submitted")

	receipt, err := s.node.WaitForReceipt(ctx, mintTx)
	if err != nil {
		// The submission may still land after a timeout; the reconcile
		// worker will mirror it if it does.
		release()
		log.Warn("mint confirmation failed", zap.Error(err))
		return nil, err
	}

	mint := findMint(receipt.Logs)
	if mint == nil {
		// The transaction succeeded, so a token probably exists; keep the
		// reservation and let the reconcile worker mirror it.
		log.Error("receipt carries no mint transfer event")
		return nil, apperrors.ErrMintEventMissing
	}

	tokenID := mint.TokenID.Int64()
	log.Info("mint confirmed", zap.Int64("token_id", tokenID))

	dbTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx)

	if err := s.eventRepo.DecrementRemaining(ctx, dbTx, event.ID); err != nil {
		// The token exists on-chain already; surface the error and leave
		// the mirror row to the reconcile worker.
		log.Error("minted token could not be recorded locally", zap.Error(err))
		return nil, err
	}

	ticket := &model.Ticket{
		TokenID:            tokenID,
		EventID:            event.ID,
		OwnerWalletAddress: mint.To.Hex(),
		TxHash:             mintTx.Hash().Hex(),
	}
	if _, err := s.ticketRepo.Insert(ctx, dbTx, ticket); err != nil {
		log.Error("minted token could not be recorded locally", zap.Error(err))
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.PurchaseResult{
		TxHash:   mintTx.Hash().Hex(),
		TokenID:  tokenID,
		TokenURI: tokenURI,
	}, nil
}

// findMint scans receipt logs for the Transfer whose from side is the zero
// address.
func findMint(logs []*types.Log) *contract.Transfer {
	for _, l := range logs {
		if l == nil {
			continue
		}
		transfer, err := contract.ParseTransfer(*l)
		if err != nil {
			continue
		}
		if transfer.IsMint() {
			return transfer
		}
	}
	return nil
}
