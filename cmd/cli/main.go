package main

import (
	"os"

	"github.com/vrusso/watchlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
