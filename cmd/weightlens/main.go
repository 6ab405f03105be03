package main

import (
	"os"

	"github.com/substrate-tools/weightlens/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
