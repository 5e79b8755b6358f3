package mocks

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

type ManagerMock struct {
	mock.Mock
}

func NewManagerMock() *ManagerMock {
	return &ManagerMock{}
}

func (m *ManagerMock) Address() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *ManagerMock) SafeMint(opts *bind.TransactOpts, to common.Address, uri string) (*types.Transaction, error) {
	args := m.Called(opts, to, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}

func (m *ManagerMock) OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	args := m.Called(opts, tokenID)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *ManagerMock) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	args := m.Called(opts, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *ManagerMock) TokenOfOwnerByIndex(opts *bind.CallOpts, owner common.Address, index *big.Int) (*big.Int, error) {
	args := m.Called(opts, owner, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *ManagerMock) TokenURI(opts *bind.CallOpts, tokenID *big.Int) (string, error) {
	args := m.Called(opts, tokenID)
	return args.String(0), args.Error(1)
}
