package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
ethereum:
  rpc: http://localhost:8545
  chain_id: 3
  branded_token_address: "0x00000000000000000000000000000000000000b1"
  gas_limit: 4000000
contracts:
  artifacts_dir: ./build/contracts
log:
  mode: prod
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPC)
	assert.Equal(t, int64(3), cfg.Ethereum.ChainID)
	assert.Equal(t, "0x00000000000000000000000000000000000000b1", cfg.Ethereum.BrandedTokenAddress)
	assert.Equal(t, uint64(4000000), cfg.Ethereum.GasLimit)
	assert.Equal(t, "./build/contracts", cfg.Contracts.ArtifactsDir)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultChainID), cfg.Ethereum.ChainID)
	assert.Equal(t, DefaultLogMode, cfg.Log.Mode)
	assert.Empty(t, cfg.Ethereum.RPC)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "ethereum:\n  rpc: http://localhost:8545\n")
	t.Setenv("BRANDEDTOKEN_ETHEREUM_RPC", "http://node:8545")
	t.Setenv("BRANDEDTOKEN_LOG_MODE", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://node:8545", cfg.Ethereum.RPC)
	assert.Equal(t, "debug", cfg.Log.Mode)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Ethereum: EthereumConfig{RPC: "http://localhost:8545", ChainID: DefaultChainID}}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing rpc", func(c *Config) { c.Ethereum.RPC = "" }, true},
		{"zero chain id", func(c *Config) { c.Ethereum.ChainID = 0 }, true},
		{"bad branded token", func(c *Config) { c.Ethereum.BrandedTokenAddress = "0x12" }, true},
		{"bad value token", func(c *Config) { c.Ethereum.ValueTokenAddress = "token" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
