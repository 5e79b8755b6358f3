package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Manager is the TicketManager surface used by the services.
type Manager interface {
	Address() common.Address
	SafeMint(opts *bind.TransactOpts, to common.Address, uri string) (*types.Transaction, error)
	OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error)
	BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error)
	TokenOfOwnerByIndex(opts *bind.CallOpts, owner common.Address, index *big.Int) (*big.Int, error)
	TokenURI(opts *bind.CallOpts, tokenID *big.Int) (string, error)
}

var _ Manager = (*TicketManager)(nil)
