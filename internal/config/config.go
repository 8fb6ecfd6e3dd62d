package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "BRANDEDTOKEN"
	DefaultChainID = 1337
	DefaultLogMode = "pretty"
)

type Config struct {
	Ethereum  EthereumConfig  `mapstructure:"ethereum"`
	Contracts ContractsConfig `mapstructure:"contracts"`
	Log       LogConfig       `mapstructure:"log"`
}

type EthereumConfig struct {
	RPC                 string `mapstructure:"rpc"`
	ChainID             int64  `mapstructure:"chain_id"`
	BrandedTokenAddress string `mapstructure:"branded_token_address"`
	ValueTokenAddress   string `mapstructure:"value_token_address"`
	GasLimit            uint64 `mapstructure:"gas_limit"`
}

type ContractsConfig struct {
	// ArtifactsDir holds compiled contract JSON that overrides the builtin ABIs.
	ArtifactsDir string `mapstructure:"artifacts_dir"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// LoadConfig reads the file at path, if any, and overlays BRANDEDTOKEN_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ethereum.rpc", "")
	v.SetDefault("ethereum.chain_id", DefaultChainID)
	v.SetDefault("ethereum.branded_token_address", "")
	v.SetDefault("ethereum.value_token_address", "")
	v.SetDefault("ethereum.gas_limit", 0)
	v.SetDefault("contracts.artifacts_dir", "")
	v.SetDefault("log.mode", DefaultLogMode)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return &config, nil
}

// Validate checks the settings needed to talk to a chain.
func (c *Config) Validate() error {
	if c.Ethereum.RPC == "" {
		return fmt.Errorf("ethereum.rpc is required")
	}
	if c.Ethereum.ChainID <= 0 {
		return fmt.Errorf("ethereum.chain_id must be positive, got %d", c.Ethereum.ChainID)
	}
	for key, addr := range map[string]string{
		"ethereum.branded_token_address": c.Ethereum.BrandedTokenAddress,
		"ethereum.value_token_address":   c.Ethereum.ValueTokenAddress,
	} {
		if addr != "" && !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a valid address: %q", key, addr)
		}
	}
	return nil
}
