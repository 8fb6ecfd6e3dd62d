package keystore

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

const (
	DirName  = ".brandedtoken"
	FileName = "keystore.json"
)

var ErrNoKey = errors.New("no private key found - please authenticate first using 'brandedtoken auth'")

type entry struct {
	PrivateKey string `json:"private_key"`
	Address    string `json:"address"`
	CreatedAt  int64  `json:"created_at"`
}

// Store keeps a single hex private key in a JSON file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Default opens the store under the user's home directory.
func Default() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return New(filepath.Join(homeDir, DirName, FileName)), nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) SavePrivateKey(privateKeyHex string) error {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")

	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return fmt.Errorf("invalid private key format: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}

	data, err := json.MarshalIndent(entry{
		PrivateKey: privateKeyHex,
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		CreatedAt:  time.Now().Unix(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keystore file: %w", err)
	}

	log := logger.WithComponent("keystore")
	log.Info().Str("path", s.path).Msg("Private key saved to keystore")
	return nil
}

func (s *Store) LoadPrivateKey() (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoKey
		}
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse keystore: %w", err)
	}
	if e.PrivateKey == "" {
		return nil, ErrNoKey
	}

	key, err := crypto.HexToECDSA(e.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key in keystore: %w", err)
	}
	return key, nil
}
