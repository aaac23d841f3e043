package main

import (
	"os"

	"github.com/martijn/clientsapi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
