package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/brandedtoken-go/pkg/abibin"
	"github.com/theblitlabs/brandedtoken-go/pkg/contractinteract"
	"github.com/theblitlabs/brandedtoken-go/pkg/keystore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log", "test"))

	err := root.Execute()
	return out.String(), err
}

func writeArtifacts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	artifact := `{"contractName":"Foo","abi":[{"type":"function","name":"say","inputs":[],"outputs":[]}],"bytecode":"0x6001"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.json"), []byte(artifact), 0o600))

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("contracts:\n  artifacts_dir: "+dir+"\n"), 0o600))
	return configFile
}

func TestABICommand(t *testing.T) {
	out, err := run(t, "abi", contractinteract.BrandedTokenContractName)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.NotEmpty(t, entries)
	assert.Contains(t, out, `"requestStake"`)

	_, err = run(t, "abi", "Unknown")
	assert.ErrorIs(t, err, abibin.ErrNotFound)

	_, err = run(t, "abi")
	assert.Error(t, err)
}

func TestBINCommand(t *testing.T) {
	configFile := writeArtifacts(t)

	out, err := run(t, "bin", "Foo", "--config", configFile)
	require.NoError(t, err)
	assert.Equal(t, "0x6001\n", out)

	_, err = run(t, "bin", contractinteract.BrandedTokenContractName, "--config", configFile)
	assert.ErrorIs(t, err, abibin.ErrNotFound)
}

func TestContractsCommand(t *testing.T) {
	out, err := run(t, "contracts", "--config", writeArtifacts(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"CONTRACT", "ABI", "BIN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"BrandedToken", "true", "false"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Foo", "true", "true"}, strings.Fields(lines[3]))
}

func TestContractsCommandBadArtifactsDir(t *testing.T) {
	t.Setenv("BRANDEDTOKEN_CONTRACTS_ARTIFACTS_DIR", filepath.Join(t.TempDir(), "missing"))

	_, err := run(t, "contracts")
	assert.Error(t, err)
}

func TestAuthCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	out, err := run(t, "auth", "--private-key", hexutil.Encode(crypto.FromECDSA(key)))
	require.NoError(t, err)
	assert.Equal(t, want.Hex()+"\n", out)

	loaded, err := keystore.New(filepath.Join(home, keystore.DirName, keystore.FileName)).LoadPrivateKey()
	require.NoError(t, err)
	assert.Equal(t, want, crypto.PubkeyToAddress(loaded.PublicKey))

	_, err = run(t, "auth", "--private-key", "0x1234")
	assert.Error(t, err)

	_, err = run(t, "auth")
	assert.Error(t, err)
}

func TestTransactionCommandsValidateInput(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"zero stake", []string{"request-stake", "--stake", "0", "--mint", "10"}, contractinteract.ErrInvalidAmount},
		{"bad mint", []string{"request-stake", "--stake", "10", "--mint", "ten"}, contractinteract.ErrInvalidAmount},
		{"short hash", []string{"reject-stake-request", "--hash", "0x1234"}, contractinteract.ErrInvalidStakeRequestHash},
		{"revoke bad hash", []string{"revoke-stake-request", "--hash", "hash"}, contractinteract.ErrInvalidStakeRequestHash},
		{"bad signature", []string{"accept-stake-request", "--hash", hash, "--signature", "0x00"}, contractinteract.ErrInvalidSignature},
		{"bad redeem", []string{"redeem", "--amount=-5"}, contractinteract.ErrInvalidAmount},
		{"bad holder", []string{"lift-restriction", "--addresses", "0x1"}, contractinteract.ErrInvalidAddress},
		{"deploy without value token", []string{"deploy", "--symbol", "BT", "--name", "Branded", "--conversion-rate", "35", "--organization", "0x00000000000000000000000000000000000000a2"}, contractinteract.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransactionCommandsRequireRPC(t *testing.T) {
	t.Setenv("BRANDEDTOKEN_ETHEREUM_RPC", "")

	_, err := run(t, "redeem", "--amount", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ethereum.rpc is required")
}

func TestParseHelpers(t *testing.T) {
	amount, err := parseAmount("stake", "0x10")
	require.NoError(t, err)
	assert.Equal(t, int64(16), amount.Int64())

	amount, err = parseAmount("stake", "1000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", amount.String())

	addr, err := parseAddress("staker", "0x00000000000000000000000000000000000000a1")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xa1"), addr)

	hash, err := parseHash("0x" + strings.Repeat("01", 32))
	require.NoError(t, err)
	assert.Equal(t, byte(1), hash[31])
}
