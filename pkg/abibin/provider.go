// Package abibin resolves contract ABIs and bytecode by contract name, with
// caller supplied overrides taking precedence over builtin metadata.
package abibin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"

	"github.com/theblitlabs/brandedtoken-go/pkg/contracts"
)

// Provider looks up ABI and BIN per contract name. Overrides are write-once per
// field and scoped to the Provider.
type Provider struct {
	builtin contracts.Source
	logger  zerolog.Logger

	mu     sync.RWMutex
	custom map[string]*contracts.Metadata
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used to report lookup and registration failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger.With().Str("component", "abibin").Logger()
	}
}

// NewProvider creates a Provider backed by builtin. A nil builtin falls back to
// contracts.Builtin().
func NewProvider(builtin contracts.Source, opts ...Option) *Provider {
	if builtin == nil {
		builtin = contracts.Builtin()
	}

	p := &Provider{
		builtin: builtin,
		logger:  zerolog.Nop(),
		custom:  make(map[string]*contracts.Metadata),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetABI returns a copy of the ABI registered for contractName, or of the
// builtin one.
func (p *Provider) GetABI(contractName string) (interface{}, error) {
	p.mu.RLock()
	custom, ok := p.custom[contractName]
	if ok && custom.ABI != nil {
		defer p.mu.RUnlock()
		return copyJSON(custom.ABI), nil
	}
	p.mu.RUnlock()

	if md, ok := p.builtin.Lookup(contractName); ok && md.ABI != nil {
		return copyJSON(md.ABI), nil
	}

	err := fmt.Errorf("could not retrieve ABI for %s: %w", contractName, ErrNotFound)
	p.logger.Error().Err(err).Str("contract", contractName).Msg("ABI lookup failed")
	return nil, err
}

// GetBIN returns the bytecode registered for contractName, or the builtin one.
func (p *Provider) GetBIN(contractName string) (string, error) {
	p.mu.RLock()
	custom, ok := p.custom[contractName]
	if ok && custom.BIN != "" {
		defer p.mu.RUnlock()
		return custom.BIN, nil
	}
	p.mu.RUnlock()

	if md, ok := p.builtin.Lookup(contractName); ok && md.BIN != "" {
		return md.BIN, nil
	}

	err := fmt.Errorf("could not retrieve BIN for %s: %w", contractName, ErrNotFound)
	p.logger.Error().Err(err).Str("contract", contractName).Msg("BIN lookup failed")
	return "", err
}

// AddABI registers contractABI for contractName. contractABI is either JSON
// text (string, []byte, json.RawMessage) or an already decoded JSON value
// (map[string]interface{}, []interface{}, []map[string]interface{}).
func (p *Provider) AddABI(contractName string, contractABI interface{}) error {
	parsed, err := normalizeABI(contractABI)
	if err != nil {
		return fmt.Errorf("couldn't add ABI for contract %s, content should be string or object: %w", contractName, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.custom[contractName]
	if ok && entry.ABI != nil {
		err := fmt.Errorf("abi for contract name %s: %w", contractName, ErrAlreadyExists)
		p.logger.Error().Err(err).Str("contract", contractName).Msg("ABI already registered")
		return err
	}
	if !ok {
		entry = &contracts.Metadata{}
		p.custom[contractName] = entry
	}
	entry.ABI = parsed
	return nil
}

// AddBIN registers contractBin for contractName. Only strings are accepted.
func (p *Provider) AddBIN(contractName string, contractBin interface{}) error {
	bin, ok := contractBin.(string)
	if !ok {
		return fmt.Errorf("bin should be a string, got %T: %w", contractBin, ErrInvalidArgument)
	}
	if bin == "" {
		return fmt.Errorf("bin for contract %s is empty: %w", contractName, ErrInvalidArgument)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.custom[contractName]
	if ok && entry.BIN != "" {
		err := fmt.Errorf("bin for contract name %s: %w", contractName, ErrAlreadyExists)
		p.logger.Error().Err(err).Str("contract", contractName).Msg("BIN already registered")
		return err
	}
	if !ok {
		entry = &contracts.Metadata{}
		p.custom[contractName] = entry
	}
	entry.BIN = bin
	return nil
}

// ContractABI resolves the ABI for contractName and parses it for use with
// go-ethereum bindings. A single ABI entry is treated as a one element list.
func (p *Provider) ContractABI(contractName string) (abi.ABI, error) {
	value, err := p.GetABI(contractName)
	if err != nil {
		return abi.ABI{}, err
	}

	if entry, ok := value.(map[string]interface{}); ok {
		value = []interface{}{entry}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to encode ABI for %s: %w", contractName, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI for %s: %v: %w", contractName, err, ErrInvalidArgument)
	}
	return parsed, nil
}

// Bytecode resolves the BIN for contractName and decodes it from hex.
func (p *Provider) Bytecode(contractName string) ([]byte, error) {
	bin, err := p.GetBIN(contractName)
	if err != nil {
		return nil, err
	}

	if !has0xPrefix(bin) {
		bin = "0x" + bin
	}
	code, err := hexutil.Decode(bin)
	if err != nil {
		return nil, fmt.Errorf("failed to decode BIN for %s: %v: %w", contractName, err, ErrInvalidArgument)
	}
	return code, nil
}

func normalizeABI(contractABI interface{}) (interface{}, error) {
	switch v := contractABI.(type) {
	case string:
		return decodeABI([]byte(v))
	case []byte:
		return decodeABI(v)
	case json.RawMessage:
		return decodeABI(v)
	case map[string]interface{}:
		if v == nil {
			return nil, ErrInvalidArgument
		}
		return copyJSON(v), nil
	case []interface{}:
		if v == nil {
			return nil, ErrInvalidArgument
		}
		return copyJSON(v), nil
	case []map[string]interface{}:
		if v == nil {
			return nil, ErrInvalidArgument
		}
		entries := make([]interface{}, len(v))
		for i, entry := range v {
			entries[i] = copyJSON(entry)
		}
		return entries, nil
	default:
		return nil, ErrInvalidArgument
	}
}

func decodeABI(data []byte) (interface{}, error) {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidArgument)
	}
	switch parsed.(type) {
	case map[string]interface{}, []interface{}:
		return parsed, nil
	default:
		return nil, ErrInvalidArgument
	}
}

// copyJSON deep-copies decoded JSON objects and arrays. Scalars are returned as is.
func copyJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		if v == nil {
			return v
		}
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = copyJSON(e)
		}
		return out
	case []interface{}:
		if v == nil {
			return v
		}
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = copyJSON(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = copyJSON(e)
		}
		return out
	default:
		return v
	}
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
