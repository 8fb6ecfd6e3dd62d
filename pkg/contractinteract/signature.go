package contractinteract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// StakeRequestSignature is a worker's signature over a stake request, split
// into the r, s and v components acceptStakeRequest expects.
type StakeRequestSignature struct {
	R [32]byte
	S [32]byte
	V uint8
}

// ParseSignature splits a 65 byte r||s||v signature in hex. A recovery id of
// 0 or 1 is shifted to 27 or 28.
func ParseSignature(sigHex string) (StakeRequestSignature, error) {
	raw, err := hexutil.Decode(sigHex)
	if err != nil {
		return StakeRequestSignature{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(raw) != 65 {
		return StakeRequestSignature{}, fmt.Errorf("%w: expected 65 bytes, got %d", ErrInvalidSignature, len(raw))
	}

	var sig StakeRequestSignature
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	sig.V = raw[64]
	if sig.V < 27 {
		sig.V += 27
	}
	if sig.V != 27 && sig.V != 28 {
		return StakeRequestSignature{}, fmt.Errorf("%w: unexpected v %d", ErrInvalidSignature, sig.V)
	}
	return sig, nil
}
