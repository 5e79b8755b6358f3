package worker

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"ticketera/internal/cache"
	"ticketera/internal/chain"
	"ticketera/internal/chain/contract"
	"ticketera/internal/model"
	"ticketera/internal/repository"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReconcileWorker closes the orphan-mint gap: a crash between chain
// confirmation and the local write leaves a minted token with no mirror row.
// The worker replays Transfer-from-zero logs from the last scanned block and
// inserts the rows the purchase flow missed.
type ReconcileWorker interface {
	Start(ctx context.Context)
}

type ReconcileWorkerImpl struct {
	pool          repository.TxBeginner
	eventRepo     repository.EventRepository
	ticketRepo    repository.TicketRepository
	inventory     cache.EventInventory
	node          chain.Node
	ticketManager contract.Manager
	interval      time.Duration
}

func NewReconcileWorker(
	pool repository.TxBeginner,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	inventory cache.EventInventory,
	node chain.Node,
	ticketManager contract.Manager,
	interval time.Duration,
) ReconcileWorker {
	return &ReconcileWorkerImpl{
		pool:          pool,
		eventRepo:     eventRepo,
		ticketRepo:    ticketRepo,
		inventory:     inventory,
		node:          node,
		ticketManager: ticketManager,
		interval:      interval,
	}
}

func (w *ReconcileWorkerImpl) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		log := logger.WithComponent("reconcile_worker")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.scan(ctx); err != nil {
					log.Warn("reconcile scan failed", zap.Error(err))
				}
			}
		}
	}()
}

func (w *ReconcileWorkerImpl) scan(ctx context.Context) error {
	log := logger.WithComponent("reconcile_worker")

	from, err := w.inventory.Cursor(ctx)
	if err != nil {
		return err
	}

	head, err := w.node.BlockNumber(ctx)
	if err != nil {
		return err
	}
	if head < from {
		return nil
	}

	logs, err := w.node.FilterTransfers(ctx, w.ticketManager.Address(), nil, from)
	if err != nil {
		return err
	}

	next := head + 1
	for _, l := range logs {
		transfer, err := contract.ParseTransfer(l)
		if err != nil || !transfer.IsMint() {
			continue
		}

		tokenID := transfer.TokenID.Int64()
		exists, err := w.ticketRepo.ExistsByTokenID(ctx, tokenID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := w.mirror(ctx, transfer); err != nil {
			log.Error("failed to mirror orphan mint",
				zap.Int64("token_id", tokenID), zap.Error(err))
			// Hold the cursor at the failed log so the next scan retries
			// it; ExistsByTokenID keeps the replay idempotent.
			if l.BlockNumber < next {
				next = l.BlockNumber
			}
			continue
		}
		log.Info("mirrored orphan mint", zap.Int64("token_id", tokenID))
	}

	return w.inventory.SetCursor(ctx, next)
}

// mirror rebuilds the missing Ticket row for a confirmed mint, resolving the
// event through the token's on-chain metadata URI.
func (w *ReconcileWorkerImpl) mirror(ctx context.Context, transfer *contract.Transfer) error {
	uri, err := w.ticketManager.TokenURI(&bind.CallOpts{Context: ctx}, transfer.TokenID)
	if err != nil {
		return err
	}

	eventID, err := eventIDFromTokenURI(uri)
	if err != nil {
		return err
	}

	dbTx, err := w.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	if err := w.eventRepo.DecrementRemaining(ctx, dbTx, eventID); err != nil {
		// A sold-out counter means the decrement already happened before
		// the crash; only the mirror row is missing.
		if !errors.Is(err, apperrors.ErrSoldOut) {
			return err
		}
	}

	ticket := &model.Ticket{
		TokenID:            transfer.TokenID.Int64(),
		EventID:            eventID,
		OwnerWalletAddress: transfer.To.Hex(),
		TxHash:             transfer.Raw.TxHash.Hex(),
	}
	if _, err := w.ticketRepo.Insert(ctx, dbTx, ticket); err != nil {
		return err
	}

	return dbTx.Commit(ctx)
}

// eventIDFromTokenURI extracts the trailing event id from a minted metadata
// URI of the form {base}/metadata/events/{id}.
func eventIDFromTokenURI(uri string) (int, error) {
	idx := strings.LastIndex(uri, "/")
	if idx < 0 || idx == len(uri)-1 {
		return 0, apperrors.ErrInvalidInput
	}
	id, err := strconv.Atoi(uri[idx+1:])
	if err != nil {
		return 0, apperrors.ErrInvalidInput
	}
	return id, nil
}
