package txsender

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidTxOptions   = errors.New("invalid transaction options")
	ErrInvalidFromAddress = errors.New("invalid from address")
	ErrTransactionFailed  = errors.New("transaction failed")
)

// TxOptions carries the caller controlled fields of a transaction. Zero Gas
// and nil GasPrice are filled in from the node.
type TxOptions struct {
	From     string
	Gas      uint64
	GasPrice *big.Int
	Value    *big.Int
}

// ValidateTxOptions checks that opts is present and names a valid sender.
func ValidateTxOptions(opts *TxOptions) error {
	if opts == nil {
		return fmt.Errorf("%w: %v", ErrInvalidTxOptions, nil)
	}
	if !common.IsHexAddress(opts.From) {
		return fmt.Errorf("%w %q in transaction options", ErrInvalidFromAddress, opts.From)
	}
	if opts.Value != nil && opts.Value.Sign() < 0 {
		return fmt.Errorf("%w: negative value %s", ErrInvalidTxOptions, opts.Value)
	}
	return nil
}

// FromAddress returns the sender address. Callers validate opts first.
func (o *TxOptions) FromAddress() common.Address {
	return common.HexToAddress(o.From)
}
