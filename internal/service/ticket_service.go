package service

import (
	"context"
	"fmt"
	"math/big"

	"ticketera/internal/chain"
	"ticketera/internal/chain/contract"
	"ticketera/internal/model"
	"ticketera/internal/repository"
	apperrors "ticketera/pkg/app_errors"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

type TicketService interface {
	// OwnerOf resolves the current on-chain owner, which may differ from
	// the mirror row when the token moved off-platform after mint.
	OwnerOf(ctx context.Context, tokenID int64) (string, error)
	History(ctx context.Context, tokenID int64) ([]*model.TransferEntry, error)
	MyTickets(ctx context.Context, actor *model.User) ([]*model.Ticket, error)
	Metadata(ctx context.Context, tokenID int64) (*model.TicketMetadata, error)
	SalesByCategory(ctx context.Context, actor *model.User) ([]*model.CategorySales, error)
}

type TicketServiceImpl struct {
	ticketRepo      repository.TicketRepository
	node            chain.Node
	ticketManager   contract.Manager
	metadataBaseURL string
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	node chain.Node,
	ticketManager contract.Manager,
	metadataBaseURL string,
) TicketService {
	return &TicketServiceImpl{
		ticketRepo:      ticketRepo,
		node:            node,
		ticketManager:   ticketManager,
		metadataBaseURL: metadataBaseURL,
	}
}

func (s *TicketServiceImpl) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	owner, err := s.ticketManager.OwnerOf(&bind.CallOpts{Context: ctx}, big.NewInt(tokenID))
	if err != nil {
		// ownerOf reverts for nonexistent tokens.
		return "", apperrors.ErrTicketNotFound
	}
	return owner.Hex(), nil
}

func (s *TicketServiceImpl) History(ctx context.Context, tokenID int64) ([]*model.TransferEntry, error) {
	logs, err := s.node.FilterTransfers(ctx, s.ticketManager.Address(), big.NewInt(tokenID), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.TransferEntry, 0, len(logs))
	for _, l := range logs {
		transfer, err := contract.ParseTransfer(l)
		if err != nil {
			continue
		}
		entries = append(entries, &model.TransferEntry{
			From:        transfer.From.Hex(),
			To:          transfer.To.Hex(),
			BlockNumber: l.BlockNumber,
			TxHash:      l.TxHash.Hex(),
		})
	}

	if len(entries) == 0 {
		return nil, apperrors.ErrTicketNotFound
	}

	return entries, nil
}

// MyTickets enumerates the actor's tokens on-chain (balance plus index
// lookups, O(balance) calls) and joins event details from the mirror where a
// row exists. Tokens acquired off-platform show up with no event attached.
func (s *TicketServiceImpl) MyTickets(ctx context.Context, actor *model.User) ([]*model.Ticket, error) {
	if !actor.HasWallet() {
		return nil, apperrors.ErrMissingWallet
	}

	owner := common.HexToAddress(*actor.WalletAddress)
	opts := &bind.CallOpts{Context: ctx}

	balance, err := s.ticketManager.BalanceOf(opts, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	count := balance.Int64()
	tickets := make([]*model.Ticket, 0, count)
	if count == 0 {
		return tickets, nil
	}

	mirrors, err := s.ticketRepo.ListByWallet(ctx, owner.Hex())
	if err != nil {
		return nil, err
	}
	byToken := make(map[int64]*model.Ticket, len(mirrors))
	for _, mirror := range mirrors {
		byToken[mirror.TokenID] = mirror
	}

	for i := int64(0); i < count; i++ {
		tokenID, err := s.ticketManager.TokenOfOwnerByIndex(opts, owner, big.NewInt(i))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
		}

		if mirror, ok := byToken[tokenID.Int64()]; ok {
			tickets = append(tickets, mirror)
			continue
		}
		tickets = append(tickets, &model.Ticket{
			TokenID:            tokenID.Int64(),
			OwnerWalletAddress: owner.Hex(),
		})
	}

	return tickets, nil
}

func (s *TicketServiceImpl) Metadata(ctx context.Context, tokenID int64) (*model.TicketMetadata, error) {
	ticket, err := s.ticketRepo.FindByTokenIDWithEvent(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	event := ticket.Event

	description := ""
	if event.Description != nil {
		description = *event.Description
	}

	attributes := []model.MetadataAttribute{
		{TraitType: "Location", Value: event.Location},
		{TraitType: "Date", Value: event.Date.Format("2006-01-02T15:04:05Z07:00")},
		{TraitType: "Price", Value: fmt.Sprintf("%.2f", event.Price)},
	}
	if event.Category != nil {
		attributes = append(attributes, model.MetadataAttribute{TraitType: "Category", Value: *event.Category})
	}

	return &model.TicketMetadata{
		Name:        event.Name,
		Description: description,
		Image:       fmt.Sprintf("%s/static/events/%d.png", s.metadataBaseURL, event.ID),
		Attributes:  attributes,
	}, nil
}

func (s *TicketServiceImpl) SalesByCategory(ctx context.Context, actor *model.User) ([]*model.CategorySales, error) {
	if actor.Role != model.RoleOrganizer {
		return nil, apperrors.ErrForbidden
	}

	return s.ticketRepo.SalesByCategory(ctx)
}
