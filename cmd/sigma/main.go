package main

import (
	"github.com/sigmaops/sigma-cli/internal/cli"
)

func main() {
	cli.Execute()
}
