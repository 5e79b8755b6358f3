package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner opens local transactions. Satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}
