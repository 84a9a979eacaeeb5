package main

import (
	"os"

	"github.com/olliswe/bcp-to-t3-api/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
