package contractinteract

import "errors"

var (
	ErrInvalidAddress          = errors.New("invalid address")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidStakeRequestHash = errors.New("invalid stake request hash")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrInvalidArgument         = errors.New("invalid argument")
)
