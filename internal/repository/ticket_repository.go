package repository

import (
	"context"

	"ticketera/internal/model"
	apperrors "ticketera/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	FindByTokenIDWithEvent(ctx context.Context, tokenID int64) (*model.Ticket, error)
	ListByWallet(ctx context.Context, wallet string) ([]*model.Ticket, error)
	ExistsByTokenID(ctx context.Context, tokenID int64) (bool, error)
	SalesByCategory(ctx context.Context) ([]*model.CategorySales, error)

	// Transaction methods
	Insert(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

func (r *TicketRepositoryImpl) Insert(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (token_id, event_id, owner_wallet_address, tx_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, token_id, event_id, owner_wallet_address, tx_hash, created_at
	`

	err := tx.QueryRow(ctx, query,
		ticket.TokenID, ticket.EventID, ticket.OwnerWalletAddress, ticket.TxHash,
	).Scan(
		&ticket.ID,
		&ticket.TokenID,
		&ticket.EventID,
		&ticket.OwnerWalletAddress,
		&ticket.TxHash,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByTokenIDWithEvent(ctx context.Context, tokenID int64) (*model.Ticket, error) {
	query := `
		SELECT t.id, t.token_id, t.event_id, t.owner_wallet_address, t.tx_hash, t.created_at,
		       e.id, e.name, e.description, e.date, e.location, e.price,
		       e.total_tickets, e.remaining_tickets, e.category, e.owner_id, e.created_at, e.updated_at
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE t.token_id = $1
	`

	var ticket model.Ticket
	var event model.Event
	err := r.pool.QueryRow(ctx, query, tokenID).Scan(
		&ticket.ID,
		&ticket.TokenID,
		&ticket.EventID,
		&ticket.OwnerWalletAddress,
		&ticket.TxHash,
		&ticket.CreatedAt,
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Price,
		&event.TotalTickets,
		&event.RemainingTickets,
		&event.Category,
		&event.OwnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	ticket.Event = &event
	return &ticket, nil
}

func (r *TicketRepositoryImpl) ListByWallet(ctx context.Context, wallet string) ([]*model.Ticket, error) {
	query := `
		SELECT t.id, t.token_id, t.event_id, t.owner_wallet_address, t.tx_hash, t.created_at,
		       e.id, e.name, e.description, e.date, e.location, e.price,
		       e.total_tickets, e.remaining_tickets, e.category, e.owner_id, e.created_at, e.updated_at
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE t.owner_wallet_address = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		var ticket model.Ticket
		var event model.Event
		err := rows.Scan(
			&ticket.ID,
			&ticket.TokenID,
			&ticket.EventID,
			&ticket.OwnerWalletAddress,
			&ticket.TxHash,
			&ticket.CreatedAt,
			&event.ID,
			&event.Name,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.Price,
			&event.TotalTickets,
			&event.RemainingTickets,
			&event.Category,
			&event.OwnerID,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		ticket.Event = &event
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) ExistsByTokenID(ctx context.Context, tokenID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM tickets WHERE token_id = $1)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, tokenID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *TicketRepositoryImpl) SalesByCategory(ctx context.Context) ([]*model.CategorySales, error) {
	query := `
		SELECT COALESCE(e.category, ''), COUNT(t.id)
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		GROUP BY e.category
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]*model.CategorySales, 0)
	for rows.Next() {
		var row model.CategorySales
		if err := rows.Scan(&row.Category, &row.TicketsSold); err != nil {
			return nil, err
		}
		sales = append(sales, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}
