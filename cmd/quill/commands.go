package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/middleware/config"
	"github.com/freehandle/quill/middleware/solo"
	"github.com/freehandle/quill/middleware/store"
	"github.com/freehandle/quill/protocol/papers"
	"github.com/freehandle/quill/protocol/state"
	"github.com/freehandle/quill/util"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var keysCommand = &cli.Command{
	Name:  "keys",
	Usage: "generate a new key pair and save the secret as PEM",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "pem", Usage: "path for the PEM secret key file", Required: true},
		&cli.StringFlag{Name: "vault", Usage: "also append the secret to an encrypted vault file"},
	},
	Action: func(c *cli.Context) error {
		token, secret := crypto.RandomAsymetricKey()
		if err := os.WriteFile(c.String("pem"), secret.PEM(), 0600); err != nil {
			return fmt.Errorf("could not write secret key: %v", err)
		}
		if vaultPath := c.String("vault"); vaultPath != "" {
			password := readPassword("Provide password for vault:")
			var vault *util.SecureVault
			var err error
			if _, statErr := os.Stat(vaultPath); statErr == nil {
				vault, err = util.OpenVaultFromPassword(password, vaultPath)
			} else {
				vault, err = util.NewSecureVault(password, vaultPath)
			}
			if err != nil {
				return fmt.Errorf("could not open vault: %v", err)
			}
			defer vault.Close()
			if err := vault.NewEntry(secret[:]); err != nil {
				return fmt.Errorf("could not store secret on vault: %v", err)
			}
		}
		fmt.Printf("token: %v\n", token)
		return nil
	},
}

var genesisCommand = &cli.Command{
	Name:  "genesis",
	Usage: "create node credentials and a starter configuration file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "path", Usage: "directory for the node files", Value: "."},
	},
	Action: func(c *cli.Context) error {
		path := c.String("path")
		if err := os.MkdirAll(path, 0700); err != nil {
			return err
		}
		token, secret := crypto.RandomAsymetricKey()
		credentialsPath := filepath.Join(path, "node.pem")
		if err := os.WriteFile(credentialsPath, secret.PEM(), 0600); err != nil {
			return fmt.Errorf("could not write node credentials: %v", err)
		}
		cfg := config.QuillConfig{
			CredentialsPath: credentialsPath,
			Treasury:        token.String(),
			GatewayPort:     6001,
			BlockInterval:   1000,
			ChainPath:       path,
			GenesisTime:     time.Now().Unix(),
			Genesis: []config.GenesisWallet{
				{Token: token.String(), Wallet: 1e9},
			},
			Store: config.StoreConfig{Backend: "memory"},
		}
		data, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			return err
		}
		configPath := filepath.Join(path, "config.json")
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			return fmt.Errorf("could not write configuration: %v", err)
		}
		fmt.Printf("node token: %v\nconfiguration: %v\n", token, configPath)
		return nil
	},
}

var soloCommand = &cli.Command{
	Name:  "solo",
	Usage: "run a single node quill chain",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to the configuration file", Value: "config.json"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.LoadConfig[config.QuillConfig](c.String("config"))
		if err != nil {
			return err
		}
		credentials, err := cfg.Credentials()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		records, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		genesisTime := cfg.GenesisTime
		if genesisTime == 0 {
			genesisTime = time.Now().Unix()
		}
		genesis := state.NewGenesisStateWithToken(credentials.PublicKey(),
			crypto.TokenFromString(cfg.Treasury), genesisTime, records)
		if genesis == nil {
			return fmt.Errorf("could not create genesis state")
		}
		for _, wallet := range cfg.Genesis {
			genesis.Wallets.Credit(crypto.TokenFromString(wallet.Token), uint64(wallet.Wallet))
		}
		engine, err := solo.NewSolo(ctx, cfg.ChainPath, genesis, credentials,
			time.Duration(cfg.BlockInterval)*time.Millisecond)
		if err != nil {
			return err
		}
		if cfg.GatewayPort != 0 {
			if err := engine.Gateway(ctx, cfg.GatewayPort); err != nil {
				return err
			}
		}
		return <-engine.Start(ctx)
	},
}

var decodeCommand = &cli.Command{
	Name:      "show",
	Aliases:   []string{"decode"},
	Usage:     "decode a hex encoded record into its json view",
	ArgsUsage: "<hex-record>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("decode takes a single hex encoded record")
		}
		data, err := hex.DecodeString(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid hex: %v", err)
		}
		view := papers.JSONFromRecord(data)
		if view == "" {
			return fmt.Errorf("data does not parse as any record kind")
		}
		fmt.Println(view)
		return nil
	},
}

func readPassword(phrase string) []byte {
	fmt.Println(phrase)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	for {
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			os.Exit(1)
		}
		if len(password) > 0 {
			return password
		}
		fmt.Printf("Try again:\n")
		password, err = term.ReadPassword(int(os.Stdin.Fd()))
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (state.RecordStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return state.NewMemoryStore(), nil
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.Postgres)
	case "redis":
		return store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return nil, fmt.Errorf("unknown store backend: %v", cfg.Backend)
}

// sendAction delivers a serialized action to a gateway with the 4 byte
// little endian length prefix the solo engine expects.
func sendAction(gateway string, action []byte) error {
	conn, err := net.Dial("tcp", gateway)
	if err != nil {
		return fmt.Errorf("could not reach gateway: %v", err)
	}
	defer conn.Close()
	data := make([]byte, 0, len(action)+4)
	util.PutLargeByteArray(action, &data)
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("could not send action: %v", err)
	}
	return nil
}
