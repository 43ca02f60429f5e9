package main

import (
	"os"

	"github.com/mulegate/mulegate/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.Execute())
}
