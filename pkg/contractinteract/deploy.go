package contractinteract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MetadataProvider resolves both the ABI and the bytecode of a contract.
type MetadataProvider interface {
	ABIProvider
	Bytecode(contractName string) ([]byte, error)
}

// BrandedTokenParams are the BrandedToken constructor arguments.
type BrandedTokenParams struct {
	ValueToken             common.Address
	Symbol                 string
	Name                   string
	Decimals               uint8
	ConversionRate         *big.Int
	ConversionRateDecimals uint8
	Organization           common.Address
}

func (p BrandedTokenParams) validate() error {
	if p.ValueToken == (common.Address{}) {
		return fmt.Errorf("%w: value token address is missing", ErrInvalidAddress)
	}
	if p.Organization == (common.Address{}) {
		return fmt.Errorf("%w: organization address is missing", ErrInvalidAddress)
	}
	if p.Symbol == "" || p.Name == "" {
		return fmt.Errorf("%w: symbol and name are required", ErrInvalidArgument)
	}
	if p.ConversionRate == nil || p.ConversionRate.Sign() <= 0 {
		return fmt.Errorf("%w: conversion rate %v", ErrInvalidAmount, p.ConversionRate)
	}
	return nil
}

// Deploy creates contractName on chain using the ABI and bytecode resolved by
// provider. params are the constructor arguments.
func Deploy(ctx context.Context, provider MetadataProvider, backend bind.ContractBackend, auth *bind.TransactOpts, contractName string, params ...interface{}) (common.Address, *types.Transaction, error) {
	if auth == nil {
		return common.Address{}, nil, fmt.Errorf("%w: transact options are required", ErrInvalidArgument)
	}

	parsed, err := provider.ContractABI(contractName)
	if err != nil {
		return common.Address{}, nil, err
	}
	bytecode, err := provider.Bytecode(contractName)
	if err != nil {
		return common.Address{}, nil, err
	}

	return deploy(ctx, parsed, bytecode, backend, auth, params...)
}

// DeployBrandedToken deploys a BrandedToken contract.
func DeployBrandedToken(ctx context.Context, provider MetadataProvider, backend bind.ContractBackend, auth *bind.TransactOpts, params BrandedTokenParams) (common.Address, *types.Transaction, error) {
	if err := params.validate(); err != nil {
		return common.Address{}, nil, err
	}
	return Deploy(ctx, provider, backend, auth, BrandedTokenContractName,
		params.ValueToken,
		params.Symbol,
		params.Name,
		params.Decimals,
		params.ConversionRate,
		params.ConversionRateDecimals,
		params.Organization,
	)
}

func deploy(ctx context.Context, parsed abi.ABI, bytecode []byte, backend bind.ContractBackend, auth *bind.TransactOpts, params ...interface{}) (common.Address, *types.Transaction, error) {
	if len(bytecode) == 0 {
		return common.Address{}, nil, fmt.Errorf("%w: contract bytecode is empty", ErrInvalidArgument)
	}

	opts := *auth
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, parsed, bytecode, backend, params...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to deploy contract: %w", err)
	}
	return address, tx, nil
}
