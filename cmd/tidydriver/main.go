package main

import (
	"os"

	"github.com/tidydriver/tidydriver/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
