// Package contract provides a static Go binding for the TicketManager ERC721
// contract. The ABI is fixed at compile time; nothing is re-derived from JSON
// per call.
package contract

import (
	"errors"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrNotTransferEvent = errors.New("log is not a Transfer event")

	transferSignature = []byte("Transfer(address,address,uint256)")
)

// TransferTopic is the topic hash of the ERC721 Transfer event.
func TransferTopic() common.Hash {
	return crypto.Keccak256Hash(transferSignature)
}

// Transfer is a decoded ERC721 Transfer log. A mint carries the zero address
// in From.
type Transfer struct {
	From    common.Address
	To      common.Address
	TokenID *big.Int
	Raw     types.Log
}

// IsMint reports whether this transfer created the token.
func (t *Transfer) IsMint() bool {
	return t.From == (common.Address{})
}

// TicketManager wraps the on-chain TicketManager contract.
type TicketManager struct {
	abi      ethabi.ABI
	address  common.Address
	contract *bind.BoundContract
}

// NewTicketManager connects to an already-deployed TicketManager contract.
func NewTicketManager(address common.Address, backend bind.ContractBackend) (*TicketManager, error) {
	parsed, err := ethabi.JSON(strings.NewReader(TicketManagerABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(address, parsed, backend, backend, backend)
	return &TicketManager{
		abi:      parsed,
		address:  address,
		contract: bound,
	}, nil
}

// Address returns the deployed contract address.
func (t *TicketManager) Address() common.Address {
	return t.address
}

// SafeMint creates a new token owned by to with the given metadata URI. The
// token id is assigned on-chain and must be recovered from the Transfer event
// in the receipt.
func (t *TicketManager) SafeMint(opts *bind.TransactOpts, to common.Address, uri string) (*types.Transaction, error) {
	return t.contract.Transact(opts, "safeMint", to, uri)
}

func (t *TicketManager) OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return *ethabi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (t *TicketManager) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return ethabi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

func (t *TicketManager) TokenOfOwnerByIndex(opts *bind.CallOpts, owner common.Address, index *big.Int) (*big.Int, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, "tokenOfOwnerByIndex", owner, index)
	if err != nil {
		return nil, err
	}
	return ethabi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

func (t *TicketManager) TokenURI(opts *bind.CallOpts, tokenID *big.Int) (string, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return *ethabi.ConvertType(out[0], new(string)).(*string), nil
}

// ParseTransfer decodes a raw log into a Transfer. All three parameters are
// indexed on ERC721, so everything lives in the topics.
func ParseTransfer(log types.Log) (*Transfer, error) {
	if len(log.Topics) != 4 || log.Topics[0] != TransferTopic() {
		return nil, ErrNotTransferEvent
	}
	return &Transfer{
		From:    common.BytesToAddress(log.Topics[1].Bytes()),
		To:      common.BytesToAddress(log.Topics[2].Bytes()),
		TokenID: new(big.Int).SetBytes(log.Topics[3].Bytes()),
		Raw:     log,
	}, nil
}
