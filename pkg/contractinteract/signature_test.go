package contractinteract

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	digest := crypto.Keccak256([]byte("stake request"))
	raw, err := crypto.Sign(digest, key)
	require.NoError(t, err)

	sig, err := ParseSignature(hexutil.Encode(raw))
	require.NoError(t, err)
	assert.Equal(t, raw[:32], sig.R[:])
	assert.Equal(t, raw[32:64], sig.S[:])
	assert.Equal(t, raw[64]+27, sig.V)

	t.Run("already shifted v", func(t *testing.T) {
		shifted := append([]byte{}, raw...)
		shifted[64] += 27
		again, err := ParseSignature(hexutil.Encode(shifted))
		require.NoError(t, err)
		assert.Equal(t, sig, again)
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"0x1234",
			"0x" + strings.Repeat("zz", 65),
			hexutil.Encode(append(raw[:64:64], 5)),
		} {
			_, err := ParseSignature(input)
			assert.ErrorIs(t, err, ErrInvalidSignature, input)
		}
	})
}
