package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	godotenv.Load()
	app := &cli.App{
		Name:  "quill",
		Usage: "quill social chain node and tooling",
		Commands: []*cli.Command{
			keysCommand,
			genesisCommand,
			soloCommand,
			submitCommand,
			decodeCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
