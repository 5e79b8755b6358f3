package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

type NodeMock struct {
	mock.Mock
}

func NewNodeMock() *NodeMock {
	return &NodeMock{}
}

func (m *NodeMock) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bind.TransactOpts), args.Error(1)
}

func (m *NodeMock) WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *NodeMock) FilterTransfers(ctx context.Context, contractAddr common.Address, tokenID *big.Int, fromBlock uint64) ([]types.Log, error) {
	args := m.Called(ctx, contractAddr, tokenID, fromBlock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Log), args.Error(1)
}

func (m *NodeMock) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}
