package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// TxBeginnerMock stands in for the connection pool on purchase-flow tests.
type TxBeginnerMock struct {
	mock.Mock
}

func NewTxBeginnerMock() *TxBeginnerMock {
	return &TxBeginnerMock{}
}

func (m *TxBeginnerMock) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	args := m.Called(ctx, txOptions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

// TxMock implements pgx.Tx. Only Commit and Rollback are recorded; the
// repositories that receive the transaction are themselves mocked, so the
// query methods never run.
type TxMock struct {
	mock.Mock
}

func NewTxMock() *TxMock {
	return &TxMock{}
}

func (m *TxMock) Begin(ctx context.Context) (pgx.Tx, error) {
	return m, nil
}

func (m *TxMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *TxMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *TxMock) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *TxMock) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (m *TxMock) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (m *TxMock) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (m *TxMock) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *TxMock) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *TxMock) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *TxMock) Conn() *pgx.Conn {
	return nil
}
