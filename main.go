package main

import (
	"os"

	"github.com/nimbleworks/dochat/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
