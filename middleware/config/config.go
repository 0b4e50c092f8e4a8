package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/freehandle/quill/crypto"
)

type Configurable interface {
	Check() error
}

func LoadConfig[T Configurable](path string) (*T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open configuration file: %v", err)
	}
	defer file.Close()
	var config T
	err = json.NewDecoder(file).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("could not parse configuration file: %v", err)
	}
	if err := config.Check(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return &config, nil
}

// GenesisWallet funds a token on the genesis state.
type GenesisWallet struct {
	Token  string `json:"token"`
	Wallet int    `json:"amount"`
}

// StoreConfig selects the record store backend for a node. Backend must be
// one of "memory", "postgres" or "redis".
type StoreConfig struct {
	Backend       string `json:"backend"`
	Postgres      string `json:"postgres"`
	RedisAddr     string `json:"redisAddr"`
	RedisPassword string `json:"redisPassword"`
	RedisDB       int    `json:"redisDB"`
}

// QuillConfig is the top level configuration for a quill solo node.
type QuillConfig struct {
	// Path to a PEM encoded ed25519 secret key for the node credentials.
	CredentialsPath string `json:"credentialsPath"`
	// Treasury is the token receiving platform fees.
	Treasury string `json:"treasury"`
	// Port for gateway connections proposing actions.
	GatewayPort int `json:"gatewayPort"`
	// BlockInterval is the number of milliseconds between blocks.
	BlockInterval int `json:"blockInterval"`
	// ChainPath is the directory keeping the block history files.
	ChainPath string `json:"chainPath"`
	// GenesisTime is the unix timestamp of epoch zero. It anchors the
	// authoritative clock and must not change once a chain exists.
	GenesisTime int64 `json:"genesisTime"`
	// Genesis wallets funded at epoch zero. Ignored when resuming an
	// existing chain.
	Genesis []GenesisWallet `json:"genesis"`
	Store   StoreConfig     `json:"store"`
}

func (c StoreConfig) Check() error {
	switch c.Backend {
	case "", "memory":
	case "postgres":
		if c.Postgres == "" {
			return fmt.Errorf("Store.Postgres connection string must be provided")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("Store.RedisAddr must be provided")
		}
	default:
		return fmt.Errorf("Store.Backend must be one of memory, postgres or redis")
	}
	return nil
}

func (c QuillConfig) Check() error {
	if c.CredentialsPath == "" {
		return fmt.Errorf("CredentialsPath must be provided")
	}
	if crypto.TokenFromString(c.Treasury).Equal(crypto.ZeroToken) {
		return fmt.Errorf("Treasury is not a valid token")
	}
	if c.GatewayPort != 0 && (c.GatewayPort < 1024 || c.GatewayPort > 49151) {
		return fmt.Errorf("GatewayPort must be between 1024 and 49151")
	}
	if c.BlockInterval < 100 {
		return fmt.Errorf("BlockInterval must be at least 100ms")
	}
	if c.ChainPath == "" {
		return fmt.Errorf("ChainPath must be provided")
	}
	if c.GenesisTime < 0 {
		return fmt.Errorf("GenesisTime must not be negative")
	}
	for _, wallet := range c.Genesis {
		if crypto.TokenFromString(wallet.Token).Equal(crypto.ZeroToken) {
			return fmt.Errorf("Genesis contains an invalid token")
		}
		if wallet.Wallet < 0 {
			return fmt.Errorf("Genesis contains a negative amount")
		}
	}
	return c.Store.Check()
}

// Credentials reads the node secret key from the configured PEM file.
func (c QuillConfig) Credentials() (crypto.PrivateKey, error) {
	data, err := os.ReadFile(c.CredentialsPath)
	if err != nil {
		return crypto.ZeroPrivateKey, fmt.Errorf("could not read credentials file: %v", err)
	}
	secret, err := crypto.ParsePEMPrivateKey(data)
	if err != nil {
		return crypto.ZeroPrivateKey, fmt.Errorf("could not parse credentials file: %v", err)
	}
	return secret, nil
}
