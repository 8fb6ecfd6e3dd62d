package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/theblitlabs/brandedtoken-go/pkg/txsender"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendTransaction(ctx context.Context, to common.Address, data []byte, opts *txsender.TxOptions) (*types.Transaction, error) {
	args := m.Called(ctx, to, data, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}
