package main

import (
	"os"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
