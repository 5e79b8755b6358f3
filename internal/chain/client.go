// Package chain wraps the JSON-RPC connection to the Ethereum-compatible node
// that hosts the TicketManager contract. Every outgoing transaction is signed
// by the single operator key; buyers never sign anything themselves.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"ticketera/config"
	"ticketera/internal/chain/contract"
	apperrors "ticketera/pkg/app_errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

type Client struct {
	eth            *ethclient.Client
	chainID        *big.Int
	operatorKey    *ecdsa.PrivateKey
	operator       common.Address
	confirmTimeout time.Duration
}

// Dial connects to the configured RPC endpoint and derives the operator
// account from the configured private key.
func Dial(ctx context.Context, cfg *config.ChainConfig) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.OperatorKey, "0x"))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("invalid operator key: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	return &Client{
		eth:            eth,
		chainID:        chainID,
		operatorKey:    key,
		operator:       crypto.PubkeyToAddress(key.PublicKey),
		confirmTimeout: cfg.ConfirmTimeout,
	}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

// Backend exposes the node connection for contract bindings.
func (c *Client) Backend() bind.ContractBackend {
	return c.eth
}

func (c *Client) OperatorAddress() common.Address {
	return c.operator
}

// TransactOpts returns signing options bound to the operator key. Nonce and
// gas are left for the backend to resolve at submission time.
func (c *Client) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.operatorKey, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// WaitForReceipt blocks until the transaction is mined or the configured
// confirmation timeout elapses. A hung node surfaces as ErrChainTimeout
// instead of an indefinite hang.
func (c *Client) WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.eth, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrChainTimeout
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperrors.ErrChainReverted
	}

	return receipt, nil
}

// FilterTransfers fetches Transfer logs emitted by the contract, in block
// order. When tokenID is non-nil only that token's transfers are returned.
func (c *Client) FilterTransfers(ctx context.Context, contractAddr common.Address, tokenID *big.Int, fromBlock uint64) ([]types.Log, error) {
	topics := [][]common.Hash{{contract.TransferTopic()}}
	if tokenID != nil {
		topics = append(topics,
			nil, // from: any
			nil, // to: any
			[]common.Hash{common.BigToHash(tokenID)},
		)
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{contractAddr},
		Topics:    topics,
	}

	logs, err := c.eth.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}

	return logs, nil
}

// BlockNumber returns the current chain head height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.eth.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrChainUnavailable, err)
	}
	return n, nil
}
