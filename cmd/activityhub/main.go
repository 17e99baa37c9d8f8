package main

import (
	"os"

	"github.com/mergington/activityhub/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
