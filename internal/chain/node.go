package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Node is the slice of the chain client the services and the reconcile
// worker depend on.
type Node interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
	WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	FilterTransfers(ctx context.Context, contractAddr common.Address, tokenID *big.Int, fromBlock uint64) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

var _ Node = (*Client)(nil)
