package main

import (
	"os"

	"github.com/m04kA/SMC-SmartScheduler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
